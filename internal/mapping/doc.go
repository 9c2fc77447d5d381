// Package mapping provides the graph mapping model, its YAML loader and a
// static validator.
//
// A mapping describes how locations of a JSON-like document become vertices,
// edges and their properties. It is loaded once and treated as immutable
// while statements are compiled from it.
//
// # Schema Overview
//
//	settings:
//	  string_length: 0        # default length of STRING properties, 0 = per-type default
//	  array_delimiter: ","    # default array_join delimiter
//	  dynamic_tags: false     # enable dynamic fields on tags that do not configure them
//	  key_separator: "_"      # joins composite vertex keys
//	tags:
//	  Place:
//	    from: /places          # one record or an array of records
//	    key: /cid              # or a composite key: [/country, /cid]
//	    dynamic_fields:        # or simply true / false
//	      allowed_types: [STRING, INT64]
//	      excluded_properties: [internal]
//	    properties:
//	      - json: /cid
//	        type: INT
//	        index: true
//	      - json: /name
//	        name: name
//	        type: STRING
//	        max_length: 64
//	        optional: true
//	        default: unknown
//	        transform: string_normalize
//	edges:
//	  LocatedIn:
//	    from: /places
//	    source: {tag: Place, key: /cid}
//	    target: {tag: City, key: /city_id}
//	    properties:
//	      - json: /since
//	        type: TIMESTAMP
//	        transform: {type: time_format, params: {format: "%Y-%m-%d"}}
//
// Tags and edges keep their declaration order. Endpoints may also be written
// flat as source_tag/source_key and target_tag/target_key.
//
// # Defaults
//
//   - key paths default to "/id"
//   - a property name defaults to its path with separators replaced by "_"
//   - a property with a built-in transform and no type takes the transform's
//     result type
//
// # Validation
//
// Validate reports every problem it finds as a diagnostic instead of stopping
// at the first one. Unknown transforms, types and endpoint tags come with
// "did you mean" suggestions.
package mapping
