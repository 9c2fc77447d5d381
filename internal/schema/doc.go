// Package schema derives store schema from a mapping.
//
// It converts abstract property types into native store types, validates
// identifiers and emits the statements that create, index and drop tags and
// edges:
//
//	CREATE TAG IF NOT EXISTS `Place` (
//	    `cid` INT64 NOT NULL,
//	    `name` STRING(256) NOT NULL
//	) ttl_duration = 0, ttl_col = "";
//	CREATE TAG INDEX IF NOT EXISTS `Place_name_idx` ON `Place`(`name`(256));
//
// Schema generation depends only on the mapping, never on document data.
// Every operation stops at the first error.
package schema
