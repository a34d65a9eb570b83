package model

// ManualCategory manual subject block
type ManualCategory string

const (
	CategoryAtencionCliente ManualCategory = "Atención al Cliente"
	CategoryOperativa       ManualCategory = "Operativa"
	CategoryProducto        ManualCategory = "Producto"
	CategoryVisual          ManualCategory = "Visual"

	// CategoryGlobal marks results of cross-block certifications; it is not a
	// valid manual category.
	CategoryGlobal ManualCategory = "Global"
)

// Categories lists the four manual blocks in display order.
var Categories = []ManualCategory{
	CategoryAtencionCliente,
	CategoryOperativa,
	CategoryProducto,
	CategoryVisual,
}

func (c ManualCategory) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// swagger:model Manual
type Manual struct {
	ID         string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	UploadDate string         `gorm:"size:10;not null" json:"uploadDate"` // YYYY-MM-DD
	Category   ManualCategory `gorm:"size:50;index;not null" json:"category"`
	FileData   string         `gorm:"type:longtext" json:"fileData,omitempty"` // base64 document payload
	MimeType   string         `gorm:"size:100" json:"mimeType,omitempty"`
}

func (Manual) TableName() string {
	return "manuals"
}

// ManualFile is the opaque document payload handed to the AI collaborators.
type ManualFile struct {
	Data     string `json:"data"` // base64
	MimeType string `json:"mimeType"`
}
