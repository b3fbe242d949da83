package dto

// ConvertRequest carries the parsed arguments of
// `/convert <amount> <from> <to>`.
type ConvertRequest struct {
	Amount float64 `validate:"required,gt=0"`
	From   string  `validate:"required,len=3,alpha"`
	To     string  `validate:"required,len=3,alpha"`
}
