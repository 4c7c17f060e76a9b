package dbus

import (
	"context"
	"fmt"

	godbus "github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jnphilipp/papis-search-provider/internal/core/domain"
	"github.com/jnphilipp/papis-search-provider/internal/logger"
)

// Server exports a search provider under a well-known bus name.
type Server struct {
	ports   *Ports
	busName string
	path    godbus.ObjectPath
}

// NewServer creates a bus server for busName.
func NewServer(ports *Ports, busName string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if busName == "" {
		return nil, fmt.Errorf("dbus: empty bus name: %w", domain.ErrInvalidInput)
	}

	path := ObjectPath(busName)
	if !path.IsValid() {
		return nil, fmt.Errorf("dbus: bus name %q gives invalid object path %q: %w", busName, path, domain.ErrInvalidInput)
	}

	return &Server{
		ports:   ports,
		busName: busName,
		path:    path,
	}, nil
}

// BusName returns the well-known name the server requests.
func (s *Server) BusName() string {
	return s.busName
}

// Path returns the object path the provider is exported at.
func (s *Server) Path() godbus.ObjectPath {
	return s.path
}

// Run exports the provider on conn, acquires the bus name and serves
// requests until ctx is cancelled. The connection stays open afterwards.
func (s *Server) Run(ctx context.Context, conn *godbus.Conn) error {
	obj := &provider{ctx: ctx, svc: s.ports.SearchProvider}

	if err := conn.Export(obj, s.path, InterfaceName); err != nil {
		return fmt.Errorf("exporting %s: %w", InterfaceName, err)
	}
	defer conn.Export(nil, s.path, InterfaceName) //nolint:errcheck

	node := introspectNode(string(s.path))
	if err := conn.Export(introspect.NewIntrospectable(node), s.path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("exporting introspection: %w", err)
	}
	defer conn.Export(nil, s.path, "org.freedesktop.DBus.Introspectable") //nolint:errcheck

	reply, err := conn.RequestName(s.busName, godbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("requesting name %s: %w", s.busName, err)
	}
	if reply != godbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("%w: %s", ErrNameTaken, s.busName)
	}
	defer func() {
		if _, err := conn.ReleaseName(s.busName); err != nil {
			logger.Warn("Releasing bus name %s: %v", s.busName, err)
		}
	}()

	logger.Info("Serving %s at %s", s.busName, s.path)
	<-ctx.Done()
	logger.Debug("Stopping %s", s.busName)
	return nil
}
