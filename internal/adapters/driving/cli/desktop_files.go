package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jnphilipp/papis-search-provider/internal/adapters/driving/dbus"
)

// DefaultDesktopID is the desktop entry the shell associates results with.
const DefaultDesktopID = "papis-search-provider.desktop"

var (
	desktopDir  string
	desktopExec string
	desktopID   string
)

var desktopFilesCmd = &cobra.Command{
	Use:   "desktop-files",
	Short: "Write the files GNOME Shell needs to find the provider",
	Long: `Write the search provider .ini, the D-Bus activation .service and the
desktop entry for the configured bus name.

Install them to:
  <bus name>.ini       /usr/share/gnome-shell/search-providers/
  <bus name>.service   ~/.local/share/dbus-1/services/
  <desktop id>         ~/.local/share/applications/`,
	Args: cobra.NoArgs,
	RunE: runDesktopFiles,
}

func init() {
	desktopFilesCmd.Flags().StringVar(&desktopDir, "dir", ".", "output directory")
	desktopFilesCmd.Flags().StringVar(&desktopExec, "exec", "", "executable started by D-Bus (default this binary)")
	desktopFilesCmd.Flags().StringVar(&desktopID, "desktop-id", DefaultDesktopID, "desktop entry id")
	rootCmd.AddCommand(desktopFilesCmd)
}

func runDesktopFiles(cmd *cobra.Command, _ []string) error {
	exe := desktopExec
	if exe == "" {
		path, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		exe = path
	}

	if err := os.MkdirAll(desktopDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", desktopDir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{settings.BusName + ".ini", searchProviderIni(settings.BusName, desktopID)},
		{settings.BusName + ".service", dbusService(settings.BusName, exe)},
		{desktopID, desktopEntry(exe)},
	}

	for _, f := range files {
		path := filepath.Join(desktopDir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		cmd.Printf("Wrote %s\n", path)
	}
	return nil
}

// searchProviderIni renders the GNOME Shell search provider registration.
func searchProviderIni(busName, desktopID string) string {
	var b strings.Builder
	b.WriteString("[Shell Search Provider]\n")
	fmt.Fprintf(&b, "DesktopId=%s\n", desktopID)
	fmt.Fprintf(&b, "BusName=%s\n", busName)
	fmt.Fprintf(&b, "ObjectPath=%s\n", dbus.ObjectPath(busName))
	b.WriteString("Version=2\n")
	return b.String()
}

// dbusService renders the session bus activation file.
func dbusService(busName, exe string) string {
	var b strings.Builder
	b.WriteString("[D-BUS Service]\n")
	fmt.Fprintf(&b, "Name=%s\n", busName)
	fmt.Fprintf(&b, "Exec=%s serve\n", exe)
	return b.String()
}

// desktopEntry renders the desktop entry the shell resolves DesktopId to.
// It must stay visible or the shell ignores the provider.
func desktopEntry(exe string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=Papis\n")
	b.WriteString("Comment=Search papis bibliography libraries\n")
	b.WriteString("Icon=papis\n")
	fmt.Fprintf(&b, "Exec=%s search\n", exe)
	b.WriteString("Terminal=true\n")
	return b.String()
}
