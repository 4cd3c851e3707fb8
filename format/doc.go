// Package format provides the wire format adapters of docmap.
//
// # Usage
//
//	e := bind.New()
//	data, err := format.Marshal(e, format.XMLFormat, user)
//
//	var u User
//	err = format.Unmarshal(e, format.XMLFormat, data, &u)
//
//	// re-encode a document without binding it
//	out, err := format.Convert(format.XMLFormat, format.YAMLFormat, data)
//
// Each Adapter turns bytes into a node tree and back. XML roots are named
// after the root element and nodes take their kind from their content;
// form pairs are fixed Value nodes under a fixed Object root; YAML and JSON
// roots are anonymous and parsed nodes keep the kind they were read as.
//
// # Related Packages
//
//   - github.com/signadot/docmap/node - document nodes
//   - github.com/signadot/docmap/bind - binding engine
package format
