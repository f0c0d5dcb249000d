package dtos

type RentRollImportRequest struct {
	Data     [][]string `json:"data" validate:"required,min=1"`
	FileName string     `json:"fileName" validate:"required"`
}

// RentRollRowError describes one CSV row that could not be reconciled. Row is
// 1-based and counts the header.
type RentRollRowError struct {
	Row    int    `json:"row"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type RentRollImportResponse struct {
	Message      string             `json:"message"`
	CreatedCount int                `json:"createdCount"`
	Errors       []RentRollRowError `json:"errors"`
	ErrorCount   int                `json:"errorCount"`
}
