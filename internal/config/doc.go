// Package config loads the product catalog the page is built from.
//
// A catalog describes everything the page shows: color swatches and their
// images, gallery thumbnails, sizes, tab panes (authored in Markdown),
// pairing cards and the bundle price list, plus the storage and logging
// settings of the program embedding the page.
//
// Catalogs are YAML (or JSON) files. Values are layered: built-in defaults,
// then the file, then PRODUCTPAGE_* environment variables, where a double
// underscore separates nested keys:
//
//	PRODUCTPAGE_TITLE="Crew Tee"           → title
//	PRODUCTPAGE_STORAGE__BACKEND=sqlite    → storage.backend
//	PRODUCTPAGE_LOG__LEVEL=debug           → log.level
package config
