package dto

// DmarcSummaryInput is posted by the DMARC report processor.
type DmarcSummaryInput struct {
	Domain       string `json:"domain" binding:"required"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Year         int    `json:"year" binding:"required,min=2000"`
	FullPass     int    `json:"fullPass" binding:"min=0"`
	PassSpfOnly  int    `json:"passSpfOnly" binding:"min=0"`
	PassDkimOnly int    `json:"passDkimOnly" binding:"min=0"`
	Fail         int    `json:"fail" binding:"min=0"`
}
