package metastore

// Clip is one catalogued source recording. Rows are written once by the
// import step and treated as read-only by the dataset pipeline.
type Clip struct {
	ID          uint   `gorm:"primaryKey"`
	ClipID      string `gorm:"uniqueIndex:idx_clips_clip_id"`
	SpeciesCode string `gorm:"index:idx_clips_species"`
	Filename    string
	DurationSec float64
}
