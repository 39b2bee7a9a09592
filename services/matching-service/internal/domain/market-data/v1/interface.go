package marketdatav1

import "context"

// DepthPublisher broadcasts book depth.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=marketdatav1_mock
type DepthPublisher interface {
	PublishDepth(ctx context.Context, depth Depth) error
}
