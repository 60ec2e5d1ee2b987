package transportv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// TransportServiceName is the fully-qualified name of the TransportService service.
const TransportServiceName = "musicbox.v1.TransportService"

// Procedure names of the TransportService RPCs.
const (
	TransportServicePlayProcedure            = "/musicbox.v1.TransportService/Play"
	TransportServicePauseProcedure           = "/musicbox.v1.TransportService/Pause"
	TransportServiceStopProcedure            = "/musicbox.v1.TransportService/Stop"
	TransportServiceSkipToNextProcedure      = "/musicbox.v1.TransportService/SkipToNext"
	TransportServiceSkipToPreviousProcedure  = "/musicbox.v1.TransportService/SkipToPrevious"
	TransportServiceSeekToProcedure          = "/musicbox.v1.TransportService/SeekTo"
	TransportServicePlayFromMediaIDProcedure = "/musicbox.v1.TransportService/PlayFromMediaID"
	TransportServicePlayFromSearchProcedure  = "/musicbox.v1.TransportService/PlayFromSearch"
	TransportServiceSkipToQueueItemProcedure = "/musicbox.v1.TransportService/SkipToQueueItem"
	TransportServiceSetRatingProcedure       = "/musicbox.v1.TransportService/SetRating"
	TransportServiceToggleFavoriteProcedure  = "/musicbox.v1.TransportService/ToggleFavorite"
	TransportServiceGetStatusProcedure       = "/musicbox.v1.TransportService/GetStatus"
	TransportServiceGetQueueProcedure        = "/musicbox.v1.TransportService/GetQueue"
	TransportServiceBrowseProcedure          = "/musicbox.v1.TransportService/Browse"
	TransportServiceGetArtProcedure          = "/musicbox.v1.TransportService/GetArt"
	TransportServiceSubscribeProcedure       = "/musicbox.v1.TransportService/Subscribe"
)

// TransportServiceHandler is implemented by the TransportService server.
type TransportServiceHandler interface {
	// Play starts or resumes playback.
	Play(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// Pause pauses playback.
	Pause(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// Stop stops playback.
	Stop(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SkipToNext plays the next queue item.
	SkipToNext(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SkipToPrevious plays the previous queue item.
	SkipToPrevious(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SeekTo moves the stream position.
	SeekTo(context.Context, *connect.Request[SeekToRequest]) (*connect.Response[CommandResponse], error)
	// PlayFromMediaID plays a media id within its category.
	PlayFromMediaID(context.Context, *connect.Request[PlayFromMediaIDRequest]) (*connect.Response[CommandResponse], error)
	// PlayFromSearch plays the results of a search.
	PlayFromSearch(context.Context, *connect.Request[PlayFromSearchRequest]) (*connect.Response[CommandResponse], error)
	// SkipToQueueItem plays a queue item.
	SkipToQueueItem(context.Context, *connect.Request[SkipToQueueItemRequest]) (*connect.Response[CommandResponse], error)
	// SetRating marks the current track as favorite or not.
	SetRating(context.Context, *connect.Request[SetRatingRequest]) (*connect.Response[CommandResponse], error)
	// ToggleFavorite flips the favorite mark of the current track.
	ToggleFavorite(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// GetStatus returns the session status.
	GetStatus(context.Context, *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error)
	// GetQueue returns the current queue.
	GetQueue(context.Context, *connect.Request[GetQueueRequest]) (*connect.Response[GetQueueResponse], error)
	// Browse lists the children of a media id.
	Browse(context.Context, *connect.Request[BrowseRequest]) (*connect.Response[BrowseResponse], error)
	// GetArt returns the stored artwork of a track.
	GetArt(context.Context, *connect.Request[GetArtRequest]) (*connect.Response[GetArtResponse], error)
	// Subscribe streams session notifications, current state first.
	Subscribe(context.Context, *connect.Request[SubscribeRequest], *connect.ServerStream[Notification]) error
}

// NewTransportServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. Messages are encoded with Codec.
func NewTransportServiceHandler(svc TransportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(TransportServicePlayProcedure, connect.NewUnaryHandler(TransportServicePlayProcedure, svc.Play, opts...))
	mux.Handle(TransportServicePauseProcedure, connect.NewUnaryHandler(TransportServicePauseProcedure, svc.Pause, opts...))
	mux.Handle(TransportServiceStopProcedure, connect.NewUnaryHandler(TransportServiceStopProcedure, svc.Stop, opts...))
	mux.Handle(TransportServiceSkipToNextProcedure, connect.NewUnaryHandler(TransportServiceSkipToNextProcedure, svc.SkipToNext, opts...))
	mux.Handle(TransportServiceSkipToPreviousProcedure, connect.NewUnaryHandler(TransportServiceSkipToPreviousProcedure, svc.SkipToPrevious, opts...))
	mux.Handle(TransportServiceSeekToProcedure, connect.NewUnaryHandler(TransportServiceSeekToProcedure, svc.SeekTo, opts...))
	mux.Handle(TransportServicePlayFromMediaIDProcedure, connect.NewUnaryHandler(TransportServicePlayFromMediaIDProcedure, svc.PlayFromMediaID, opts...))
	mux.Handle(TransportServicePlayFromSearchProcedure, connect.NewUnaryHandler(TransportServicePlayFromSearchProcedure, svc.PlayFromSearch, opts...))
	mux.Handle(TransportServiceSkipToQueueItemProcedure, connect.NewUnaryHandler(TransportServiceSkipToQueueItemProcedure, svc.SkipToQueueItem, opts...))
	mux.Handle(TransportServiceSetRatingProcedure, connect.NewUnaryHandler(TransportServiceSetRatingProcedure, svc.SetRating, opts...))
	mux.Handle(TransportServiceToggleFavoriteProcedure, connect.NewUnaryHandler(TransportServiceToggleFavoriteProcedure, svc.ToggleFavorite, opts...))
	mux.Handle(TransportServiceGetStatusProcedure, connect.NewUnaryHandler(TransportServiceGetStatusProcedure, svc.GetStatus, opts...))
	mux.Handle(TransportServiceGetQueueProcedure, connect.NewUnaryHandler(TransportServiceGetQueueProcedure, svc.GetQueue, opts...))
	mux.Handle(TransportServiceBrowseProcedure, connect.NewUnaryHandler(TransportServiceBrowseProcedure, svc.Browse, opts...))
	mux.Handle(TransportServiceGetArtProcedure, connect.NewUnaryHandler(TransportServiceGetArtProcedure, svc.GetArt, opts...))
	mux.Handle(TransportServiceSubscribeProcedure, connect.NewServerStreamHandler(TransportServiceSubscribeProcedure, svc.Subscribe, opts...))
	return "/" + TransportServiceName + "/", mux
}

// TransportServiceClient is a client for the TransportService service.
type TransportServiceClient interface {
	// Play starts or resumes playback.
	Play(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// Pause pauses playback.
	Pause(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// Stop stops playback.
	Stop(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SkipToNext plays the next queue item.
	SkipToNext(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SkipToPrevious plays the previous queue item.
	SkipToPrevious(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// SeekTo moves the stream position.
	SeekTo(context.Context, *connect.Request[SeekToRequest]) (*connect.Response[CommandResponse], error)
	// PlayFromMediaID plays a media id within its category.
	PlayFromMediaID(context.Context, *connect.Request[PlayFromMediaIDRequest]) (*connect.Response[CommandResponse], error)
	// PlayFromSearch plays the results of a search.
	PlayFromSearch(context.Context, *connect.Request[PlayFromSearchRequest]) (*connect.Response[CommandResponse], error)
	// SkipToQueueItem plays a queue item.
	SkipToQueueItem(context.Context, *connect.Request[SkipToQueueItemRequest]) (*connect.Response[CommandResponse], error)
	// SetRating marks the current track as favorite or not.
	SetRating(context.Context, *connect.Request[SetRatingRequest]) (*connect.Response[CommandResponse], error)
	// ToggleFavorite flips the favorite mark of the current track.
	ToggleFavorite(context.Context, *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error)
	// GetStatus returns the session status.
	GetStatus(context.Context, *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error)
	// GetQueue returns the current queue.
	GetQueue(context.Context, *connect.Request[GetQueueRequest]) (*connect.Response[GetQueueResponse], error)
	// Browse lists the children of a media id.
	Browse(context.Context, *connect.Request[BrowseRequest]) (*connect.Response[BrowseResponse], error)
	// GetArt returns the stored artwork of a track.
	GetArt(context.Context, *connect.Request[GetArtRequest]) (*connect.Response[GetArtResponse], error)
	// Subscribe streams session notifications, current state first.
	Subscribe(context.Context, *connect.Request[SubscribeRequest]) (*connect.ServerStreamForClient[Notification], error)
}

// NewTransportServiceClient constructs a client for the TransportService
// service at baseURL, for example http://localhost:8080.
func NewTransportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TransportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &transportServiceClient{
		play:            connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServicePlayProcedure, opts...),
		pause:           connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServicePauseProcedure, opts...),
		stop:            connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServiceStopProcedure, opts...),
		skipToNext:      connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServiceSkipToNextProcedure, opts...),
		skipToPrevious:  connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServiceSkipToPreviousProcedure, opts...),
		seekTo:          connect.NewClient[SeekToRequest, CommandResponse](httpClient, baseURL+TransportServiceSeekToProcedure, opts...),
		playFromMediaID: connect.NewClient[PlayFromMediaIDRequest, CommandResponse](httpClient, baseURL+TransportServicePlayFromMediaIDProcedure, opts...),
		playFromSearch:  connect.NewClient[PlayFromSearchRequest, CommandResponse](httpClient, baseURL+TransportServicePlayFromSearchProcedure, opts...),
		skipToQueueItem: connect.NewClient[SkipToQueueItemRequest, CommandResponse](httpClient, baseURL+TransportServiceSkipToQueueItemProcedure, opts...),
		setRating:       connect.NewClient[SetRatingRequest, CommandResponse](httpClient, baseURL+TransportServiceSetRatingProcedure, opts...),
		toggleFavorite:  connect.NewClient[CommandRequest, CommandResponse](httpClient, baseURL+TransportServiceToggleFavoriteProcedure, opts...),
		getStatus:       connect.NewClient[GetStatusRequest, GetStatusResponse](httpClient, baseURL+TransportServiceGetStatusProcedure, opts...),
		getQueue:        connect.NewClient[GetQueueRequest, GetQueueResponse](httpClient, baseURL+TransportServiceGetQueueProcedure, opts...),
		browse:          connect.NewClient[BrowseRequest, BrowseResponse](httpClient, baseURL+TransportServiceBrowseProcedure, opts...),
		getArt:          connect.NewClient[GetArtRequest, GetArtResponse](httpClient, baseURL+TransportServiceGetArtProcedure, opts...),
		subscribe:       connect.NewClient[SubscribeRequest, Notification](httpClient, baseURL+TransportServiceSubscribeProcedure, opts...),
	}
}

type transportServiceClient struct {
	play            *connect.Client[CommandRequest, CommandResponse]
	pause           *connect.Client[CommandRequest, CommandResponse]
	stop            *connect.Client[CommandRequest, CommandResponse]
	skipToNext      *connect.Client[CommandRequest, CommandResponse]
	skipToPrevious  *connect.Client[CommandRequest, CommandResponse]
	seekTo          *connect.Client[SeekToRequest, CommandResponse]
	playFromMediaID *connect.Client[PlayFromMediaIDRequest, CommandResponse]
	playFromSearch  *connect.Client[PlayFromSearchRequest, CommandResponse]
	skipToQueueItem *connect.Client[SkipToQueueItemRequest, CommandResponse]
	setRating       *connect.Client[SetRatingRequest, CommandResponse]
	toggleFavorite  *connect.Client[CommandRequest, CommandResponse]
	getStatus       *connect.Client[GetStatusRequest, GetStatusResponse]
	getQueue        *connect.Client[GetQueueRequest, GetQueueResponse]
	browse          *connect.Client[BrowseRequest, BrowseResponse]
	getArt          *connect.Client[GetArtRequest, GetArtResponse]
	subscribe       *connect.Client[SubscribeRequest, Notification]
}

// Play calls musicbox.v1.TransportService.Play.
func (c *transportServiceClient) Play(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.play.CallUnary(ctx, req)
}

// Pause calls musicbox.v1.TransportService.Pause.
func (c *transportServiceClient) Pause(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.pause.CallUnary(ctx, req)
}

// Stop calls musicbox.v1.TransportService.Stop.
func (c *transportServiceClient) Stop(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.stop.CallUnary(ctx, req)
}

// SkipToNext calls musicbox.v1.TransportService.SkipToNext.
func (c *transportServiceClient) SkipToNext(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.skipToNext.CallUnary(ctx, req)
}

// SkipToPrevious calls musicbox.v1.TransportService.SkipToPrevious.
func (c *transportServiceClient) SkipToPrevious(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.skipToPrevious.CallUnary(ctx, req)
}

// SeekTo calls musicbox.v1.TransportService.SeekTo.
func (c *transportServiceClient) SeekTo(ctx context.Context, req *connect.Request[SeekToRequest]) (*connect.Response[CommandResponse], error) {
	return c.seekTo.CallUnary(ctx, req)
}

// PlayFromMediaID calls musicbox.v1.TransportService.PlayFromMediaID.
func (c *transportServiceClient) PlayFromMediaID(ctx context.Context, req *connect.Request[PlayFromMediaIDRequest]) (*connect.Response[CommandResponse], error) {
	return c.playFromMediaID.CallUnary(ctx, req)
}

// PlayFromSearch calls musicbox.v1.TransportService.PlayFromSearch.
func (c *transportServiceClient) PlayFromSearch(ctx context.Context, req *connect.Request[PlayFromSearchRequest]) (*connect.Response[CommandResponse], error) {
	return c.playFromSearch.CallUnary(ctx, req)
}

// SkipToQueueItem calls musicbox.v1.TransportService.SkipToQueueItem.
func (c *transportServiceClient) SkipToQueueItem(ctx context.Context, req *connect.Request[SkipToQueueItemRequest]) (*connect.Response[CommandResponse], error) {
	return c.skipToQueueItem.CallUnary(ctx, req)
}

// SetRating calls musicbox.v1.TransportService.SetRating.
func (c *transportServiceClient) SetRating(ctx context.Context, req *connect.Request[SetRatingRequest]) (*connect.Response[CommandResponse], error) {
	return c.setRating.CallUnary(ctx, req)
}

// ToggleFavorite calls musicbox.v1.TransportService.ToggleFavorite.
func (c *transportServiceClient) ToggleFavorite(ctx context.Context, req *connect.Request[CommandRequest]) (*connect.Response[CommandResponse], error) {
	return c.toggleFavorite.CallUnary(ctx, req)
}

// GetStatus calls musicbox.v1.TransportService.GetStatus.
func (c *transportServiceClient) GetStatus(ctx context.Context, req *connect.Request[GetStatusRequest]) (*connect.Response[GetStatusResponse], error) {
	return c.getStatus.CallUnary(ctx, req)
}

// GetQueue calls musicbox.v1.TransportService.GetQueue.
func (c *transportServiceClient) GetQueue(ctx context.Context, req *connect.Request[GetQueueRequest]) (*connect.Response[GetQueueResponse], error) {
	return c.getQueue.CallUnary(ctx, req)
}

// Browse calls musicbox.v1.TransportService.Browse.
func (c *transportServiceClient) Browse(ctx context.Context, req *connect.Request[BrowseRequest]) (*connect.Response[BrowseResponse], error) {
	return c.browse.CallUnary(ctx, req)
}

// GetArt calls musicbox.v1.TransportService.GetArt.
func (c *transportServiceClient) GetArt(ctx context.Context, req *connect.Request[GetArtRequest]) (*connect.Response[GetArtResponse], error) {
	return c.getArt.CallUnary(ctx, req)
}

// Subscribe calls musicbox.v1.TransportService.Subscribe.
func (c *transportServiceClient) Subscribe(ctx context.Context, req *connect.Request[SubscribeRequest]) (*connect.ServerStreamForClient[Notification], error) {
	return c.subscribe.CallServerStream(ctx, req)
}
