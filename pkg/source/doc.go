// Package source loads the tables and images that plots are built from.
//
// Tables are go-gg [table.Table] values and satisfy [column.Table]
// directly. Two providers exist:
//
//   - [LoadCSV] and [ReadCSV] read a header row plus records. Columns whose
//     cells all parse as numbers become numeric columns.
//   - [MongoSource] reads a collection. Every top-level field becomes a
//     column, in first-seen order; a document missing a field has a null
//     cell there.
//
// [LoadImage] decodes PNG, JPEG, GIF, BMP, TIFF and WebP files for the
// image plot, and [ImageDataURI] re-encodes one as an inline PNG.
//
// [table.Table]: github.com/aclements/go-gg/table.Table
// [column.Table]: github.com/matzehuels/tabplot/pkg/column.Table
package source
