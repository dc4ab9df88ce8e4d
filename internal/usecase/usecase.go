package usecase

import "context"

type VideoUC interface {
	RegisterNewVideo(ctx context.Context, req *UploadVideoReq) (*UploadVideoRes, error)
	GetVideoInfo(ctx context.Context, videoID string) (*VideoInfoRes, error)
}

type ComparisonUC interface {
	CompareVideos(ctx context.Context, req *CompareVideosReq) (*CompareVideosRes, error)
}
