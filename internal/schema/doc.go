// Package schema is the declarative description of the server.properties
// key space that drives the generated form.
//
// Everything here is static data: which display group a key belongs to,
// its human label, the closed set of choices for selector keys, numeric
// bounds, placeholder text, which keys hold credentials, and the default
// property set written when a server has no properties file yet.
//
// The tables live in tables.go. Adding a key to the form is a data change
// only:
//
//	// tables.go
//	Groups: []GroupDef{
//		{ID: GroupGeneral, Label: "General", Keys: []string{"motd", "my-new-key"}},
//	},
//	Labels: map[string]string{"my-new-key": "My New Key"},
//
// Every lookup is total. A key the tables know nothing about still gets a
// label (the key itself), no group, no choices and no bounds, so the form
// can always render.
//
// Keys that are not listed in any group are hidden from the form. They are
// still loaded and written back untouched by the rest of the editor.
package schema
