// Package catalog serves portal content from a TOML catalogue file.
//
// The file holds one array of tables per collection:
//
//	[[news]]
//	id = "n1"
//	title = "Preço do alumínio sobe"
//	published_at = 2024-03-15
//
//	[[suppliers]]
//	id = "s1"
//	name = "AlumiBrasil"
//
// Recognised arrays are news, materials, ebooks, events, suppliers and
// foundries. When watching is enabled the file is re-read after every
// change; a file that fails to parse leaves the previous snapshot in place.
package catalog
