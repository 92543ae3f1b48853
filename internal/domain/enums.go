package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWebP FileType = "webp"
	FileTypeGIF  FileType = "gif"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWebP: "image/webp",
	FileTypeGIF:  "image/gif",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWebP,
	"image/gif":       FileTypeGIF,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWebP,
	"gif":  FileTypeGIF,
}

// IsImage reports whether the file type is a raster image.
func (t FileType) IsImage() bool {
	return t != FileTypePDF && t != ""
}

// AdType is the regulatory category of a real-estate advertisement.
type AdType string

const (
	AdTypeSaleNew         AdType = "売買（新築）"
	AdTypeSaleUsed        AdType = "売買（中古）"
	AdTypeRentResidential AdType = "賃貸（居住用）"
	AdTypeRentCommercial  AdType = "賃貸（事業用）"
	AdTypeOther           AdType = "その他"
)

// KnownAdTypes lists every valid advertisement category in display order.
var KnownAdTypes = []AdType{
	AdTypeSaleNew,
	AdTypeSaleUsed,
	AdTypeRentResidential,
	AdTypeRentCommercial,
	AdTypeOther,
}

// Valid reports whether the ad type is one of the known categories.
func (a AdType) Valid() bool {
	for _, t := range KnownAdTypes {
		if a == t {
			return true
		}
	}
	return false
}

// CheckStatus is the tri-state outcome of a checklist item review.
type CheckStatus string

const (
	StatusOK          CheckStatus = "OK"
	StatusNG          CheckStatus = "NG"
	StatusNeedsReview CheckStatus = "要確認"
)

// Valid reports whether the status is one of the three defined values.
// Anything else from the model is a contract violation, never accepted.
func (s CheckStatus) Valid() bool {
	return s == StatusOK || s == StatusNG || s == StatusNeedsReview
}

// Severity ranks a checklist item's regulatory weight.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AutoCheckLevel marks how far a tabular scene's check can be automated.
type AutoCheckLevel string

const (
	AutoCheckFull    AutoCheckLevel = "○" // fully automatable
	AutoCheckPartial AutoCheckLevel = "△" // needs a human alongside the model
	AutoCheckManual  AutoCheckLevel = "×" // human-only
)

// SceneKind discriminates the two scene record shapes.
type SceneKind string

const (
	SceneKindSimple  SceneKind = "simple"
	SceneKindTabular SceneKind = "tabular"
)

// Stage is the session state-machine value.
type Stage string

const (
	StageInitial           Stage = "initial"
	StageUploading         Stage = "uploading"
	StageAnalyzingType     Stage = "analyzing_type"
	StageConfirmType       Stage = "confirm_type"
	StageFetchingChecklist Stage = "fetching_checklist"
	StageChecking          Stage = "checking"
	StageSelectingScene    Stage = "selecting_scene"
	StageAnalyzing         Stage = "analyzing"
	StageComplete          Stage = "complete"
)

// Track selects which stage sequence a session follows.
type Track string

const (
	// TrackChecklist: PDF reviewed against the full checklist for its ad type.
	TrackChecklist Track = "checklist"
	// TrackScene: image or PDF judged against one or more discrete scenes.
	TrackScene Track = "scene"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleAI   MessageRole = "ai"
)
