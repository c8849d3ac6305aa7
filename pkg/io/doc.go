// Package io reads and writes road networks.
//
// # Text Format
//
// A network file is a sequence of whitespace-delimited records. Line breaks
// carry no meaning; every record is identified by its leading token:
//
//	i <id> <lat> <lon>    defines an intersection (degrees)
//	r <id> <a> <b>        defines a road between intersections a and b
//
// A road may only reference intersections defined earlier in the file.
// For example:
//
//	i HOME 43.1300 -77.6300
//	i WORK 43.1310 -77.6250
//	r HOME-WORK HOME WORK
//
// Road lengths are not stored: they are measured with the haversine formula
// when the network is loaded.
//
// # Errors
//
// [ReadNetwork] reports problems with the structured codes from
// [github.com/matzehuels/trailblazer/pkg/errors]:
//
//   - INVALID_FORMAT: an unknown leading token, a truncated record, or a
//     coordinate that is not a finite number. The message names the
//     1-based record number.
//   - NOT_FOUND: a road referencing an intersection that has not been
//     defined.
//   - FILE_NOT_FOUND: [ImportNetwork] was given a path that does not exist.
//
// Nothing is returned on error; a network is either loaded completely or
// not at all.
//
// # JSON Format
//
// [WriteJSON] and [ReadJSON] use a document with two arrays. Unlike the text
// format, roads carry their length so networks with explicit distances
// survive a round trip:
//
//	{
//	  "intersections": [
//	    {"id": "HOME", "lat": 43.13, "lon": -77.63},
//	    {"id": "WORK", "lat": 43.131, "lon": -77.625}
//	  ],
//	  "roads": [
//	    {"id": "HOME-WORK", "a": "HOME", "b": "WORK", "miles": 0.26}
//	  ]
//	}
//
// The same [Network] document is what the server returns from /network and
// what the store persists.
package io
