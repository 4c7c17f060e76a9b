package dbus

import (
	"github.com/godbus/dbus/v5/introspect"
)

func arg(name, typ, direction string) introspect.Arg {
	return introspect.Arg{Name: name, Type: typ, Direction: direction}
}

// searchProviderInterface describes org.gnome.Shell.SearchProvider2.
var searchProviderInterface = introspect.Interface{
	Name: InterfaceName,
	Methods: []introspect.Method{
		{
			Name: "GetInitialResultSet",
			Args: []introspect.Arg{
				arg("terms", "as", "in"),
				arg("results", "as", "out"),
			},
		},
		{
			Name: "GetSubsearchResultSet",
			Args: []introspect.Arg{
				arg("previous_results", "as", "in"),
				arg("terms", "as", "in"),
				arg("results", "as", "out"),
			},
		},
		{
			Name: "GetResultMetas",
			Args: []introspect.Arg{
				arg("identifiers", "as", "in"),
				arg("metas", "aa{sv}", "out"),
			},
		},
		{
			Name: "ActivateResult",
			Args: []introspect.Arg{
				arg("identifier", "s", "in"),
				arg("terms", "as", "in"),
				arg("timestamp", "u", "in"),
			},
		},
		{
			Name: "LaunchSearch",
			Args: []introspect.Arg{
				arg("terms", "as", "in"),
				arg("timestamp", "u", "in"),
			},
		},
	},
}

// introspectNode returns the introspection data for the exported object.
func introspectNode(path string) *introspect.Node {
	return &introspect.Node{
		Name: path,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			searchProviderInterface,
		},
	}
}
