package models

// ScriptCacheModel caches generated narration scripts and their audio.
// One row per distinct content hash; rows are never updated or deleted —
// the presence of a row is the entire cache-hit signal.
type ScriptCacheModel struct {
	Base
	ContentHash string  `json:"content_hash" gorm:"uniqueIndex;not null"` // hash(pdfId + page + total + text + neighbors)
	PDFID       string  `json:"pdf_id"       gorm:"index;not null"`
	PageNumber  int     `json:"page_number"  gorm:"not null"`
	TotalPages  int     `json:"total_pages"  gorm:"not null"`
	Script      string  `json:"script"       gorm:"type:text;not null"`
	AudioURL    *string `json:"audio_url"`
}

func (ScriptCacheModel) TableName() string { return "script_caches" }
