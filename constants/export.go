package constants

// ExportFilename is the fixed name offered for the downloadable report.
const ExportFilename = "facturas_servicios.xlsx"

// XLSXContentType is the standard spreadsheet MIME type.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
