// Package tablefile loads constmapper tables from JSON documents.
//
// A document declares the columns and lists the rows as arrays of cells:
//
//	{
//	    "columns": [
//	        {"name": "name",  "type": "string"},
//	        {"name": "bound", "type": "range:int"},
//	        {"name": "value", "type": "anyable:int"}
//	    ],
//	    "rows": [
//	        ["less2 & 1", {"op": "<", "value": 2}, 1],
//	        ["larger5",   {"op": ">", "value": 5}, null],
//	        ["Any",       null,                    null]
//	    ]
//	}
//
// Scalar column types are bool, string, int, int8, int16, int32, int64, uint,
// uint8, uint16, uint32, uint64, float32 and float64. A scalar type prefixed
// with "anyable:" declares an Anyable column, where null stands for "any
// value". An ordered scalar type prefixed with "range:" declares a Range
// column, where a cell is null (any value) or an object with a compare
// operator ("<", "<=", "==", ">=", ">", or "*") and a bound.
//
// The row type of the table is built at run time, so the table is a
// constmapper.Mapper[any]. Column names given in the document are available
// from its schema.
package tablefile
