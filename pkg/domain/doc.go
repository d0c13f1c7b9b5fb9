// Package domain contains the core entities shared by the lookup pipeline,
// the site catalog and the enumeration engine. These types carry no
// infrastructure concerns so that every layer can depend on them.
package domain
