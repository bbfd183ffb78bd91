package dto

// UploadMaterialRequest carries the metadata of a material upload; the
// file itself arrives as multipart form data
type UploadMaterialRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description *string `form:"description"`
}
