package domain

// FileType represents a statement format recognised from the upload's extension.
type FileType string

const (
	FileTypeCSV     FileType = "csv"
	FileTypeXLS     FileType = "xls"
	FileTypeXLSX    FileType = "xlsx"
	FileTypePDF     FileType = "pdf"
	FileTypeJPG     FileType = "jpg"
	FileTypePNG     FileType = "png"
	FileTypeUnknown FileType = "unknown"
)

// AllowedExtensions maps file extensions (without dot) to FileType.
// Extensions missing from this map are probed rather than rejected.
var AllowedExtensions = map[string]FileType{
	"csv":  FileTypeCSV,
	"txt":  FileTypeCSV,
	"tsv":  FileTypeCSV,
	"xls":  FileTypeXLS,
	"xlsx": FileTypeXLSX,
	"xlsm": FileTypeXLSX,
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileTypeContentTypes maps FileType to its MIME content type.
var FileTypeContentTypes = map[FileType]string{
	FileTypeCSV:  "text/csv",
	FileTypeXLS:  "application/vnd.ms-excel",
	FileTypeXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
}

// VisionContentTypes lists the media types the vision collaborator accepts.
var VisionContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Label is the balance-sheet side a row was classified into.
type Label string

const (
	LabelAsset        Label = "asset"
	LabelLiability    Label = "liability"
	LabelUnclassified Label = "unclassified"
)

// Method names the cascade strategy that produced a result.
type Method string

const (
	MethodVisionRows             Method = "vision_rows"
	MethodPairedColumns          Method = "paired_columns"
	MethodClassificationAndValue Method = "classification_and_value"
	MethodDescriptionAndValue    Method = "description_and_value"
	MethodSignHeuristic          Method = "sign_heuristic"
)

// Source records where the classified dataset came from.
type Source string

const (
	SourceVision  Source = "vision"
	SourceDecoder Source = "decoder"
)
