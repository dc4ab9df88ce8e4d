package converter

// DifferenceRedisModel — интервал расхождения в кэшированном результате.
type DifferenceRedisModel struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Distance float64 `json:"distance"`
}

// ComparisonResultRedisModel — итог сравнения в кэше Redis.
type ComparisonResultRedisModel struct {
	Differences       []DifferenceRedisModel `json:"differences"`
	TotalSegments     int                    `json:"total_segments"`
	DifferingSegments int                    `json:"differing_segments"`
	MissingSegments   int                    `json:"missing_segments"`
	SkippedSlots      int                    `json:"skipped_slots"`
	ThresholdUsed     float64                `json:"threshold_used"`
	SimilarityPercent float64                `json:"similarity_percent"`
}

// ComparisonRedisModel — кэшированный ответ сравнения двух видео.
type ComparisonRedisModel struct {
	VideoID1  string                     `json:"video_id_1"`
	VideoID2  string                     `json:"video_id_2"`
	Filename1 string                     `json:"filename_1"`
	Filename2 string                     `json:"filename_2"`
	Result    ComparisonResultRedisModel `json:"result"`
}
