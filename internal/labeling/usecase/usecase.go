package usecase

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/amankumarsingh77/cube-phase-detector/internal/clips"
	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/amankumarsingh77/cube-phase-detector/internal/labeling"
	"github.com/amankumarsingh77/cube-phase-detector/internal/media"
	"github.com/amankumarsingh77/cube-phase-detector/internal/metrics"
	"github.com/amankumarsingh77/cube-phase-detector/internal/models"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/httpErrors"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/logger"
	"github.com/amankumarsingh77/cube-phase-detector/pkg/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const videoURLPrefix = "/label/video/"

type labelingUC struct {
	cfg        *config.Config
	labelRepo  labeling.Repository
	objectRepo labeling.ObjectRepository
	prober     media.Prober
	logger     logger.Logger
	now        func() time.Time
}

func NewLabelingUseCase(
	cfg *config.Config,
	labelRepo labeling.Repository,
	objectRepo labeling.ObjectRepository,
	prober media.Prober,
	log logger.Logger,
) labeling.UseCase {
	return &labelingUC{
		cfg:        cfg,
		labelRepo:  labelRepo,
		objectRepo: objectRepo,
		prober:     prober,
		logger:     log,
		now:        time.Now,
	}
}

func (u *labelingUC) defaults() clips.Params {
	return clips.Params{FramesPerClip: u.cfg.Clips.FramesPerClip, Stride: u.cfg.Clips.Stride}
}

func (u *labelingUC) UploadVideo(ctx context.Context, input *models.UploadInput) (*models.VideoSummary, error) {
	if input == nil || input.File == nil {
		return nil, httpErrors.ErrNoFile
	}
	name := cleanFilename(input.Name)
	if name == "" {
		return nil, httpErrors.ErrEmptyFilename
	}
	input.Name = name
	if err := utils.ValidateStruct(ctx, input); err != nil {
		u.logger.Errorf("UploadVideo - ValidateStruct error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.UploadVideo.ValidateStruct")
	}

	videoID := uuid.New().String()
	input.Key = videoID + "_" + name
	input.BucketName = u.cfg.S3.Bucket
	if input.MimeType == "" || input.MimeType == "application/octet-stream" {
		input.MimeType = utils.ContentTypeByName(name)
	}

	if err := u.objectRepo.PutObject(ctx, *input); err != nil {
		u.logger.Errorf("UploadVideo - PutObject error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.UploadVideo.PutObject")
	}

	info, err := u.probe(ctx, input.Key)
	if err != nil {
		u.logger.Warnf("UploadVideo - probe %s failed, removing object: %v", input.Key, err)
		if rmErr := u.objectRepo.RemoveObject(ctx, input.Key); rmErr != nil {
			u.logger.Errorf("UploadVideo - RemoveObject error: %v", rmErr)
		}
		return nil, errors.Wrap(err, "labelingUC.UploadVideo.Probe")
	}

	params := clips.ResolveParams(models.SegmentInput{}, info.FPS, nil, u.defaults())
	summary := &models.VideoSummary{
		VideoID:      videoID,
		Filename:     name,
		VideoURL:     videoURLPrefix + videoID,
		Segmentation: clips.Segment(info.FPS, info.FrameCount, params.FramesPerClip, params.Stride),
		CreatedAt:    u.now().UTC(),
	}
	if err = u.labelRepo.SaveSummary(ctx, summary); err != nil {
		u.logger.Errorf("UploadVideo - SaveSummary error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.UploadVideo.SaveSummary")
	}

	metrics.VideosUploadedTotal.Inc()
	u.logger.Infof("UploadVideo - stored %s (%d frames at %.3f fps, %d clips)", input.Key, info.FrameCount, info.FPS, len(summary.Clips))
	return summary, nil
}

func (u *labelingUC) GetVideo(ctx context.Context, videoID string) (*models.Object, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, errors.Wrapf(httpErrors.ErrNotFound, "video %q", videoID)
	}
	summary, err := u.labelRepo.GetSummary(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "labelingUC.GetVideo.GetSummary")
	}
	obj, err := u.objectRepo.GetObject(ctx, objectKey(summary))
	if err != nil {
		return nil, errors.Wrap(err, "labelingUC.GetVideo.GetObject")
	}
	if obj.ContentType == "" {
		obj.ContentType = utils.ContentTypeByName(summary.Filename)
	}
	return obj, nil
}

func (u *labelingUC) ListVideos(ctx context.Context, pagination *utils.Pagination) (*models.VideoList, error) {
	summaries, err := u.labelRepo.ListSummaries(ctx)
	if err != nil {
		u.logger.Errorf("ListVideos - ListSummaries error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.ListVideos.ListSummaries")
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].VideoID < summaries[j].VideoID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	if !pagination.Enabled() {
		return &models.VideoList{Videos: summaries}, nil
	}
	lo, hi := utils.Paginate(pagination, len(summaries))
	list := &models.VideoList{
		Videos:     summaries[lo:hi],
		TotalCount: len(summaries),
		Page:       pagination.GetPage(),
		PageSize:   pagination.GetSize(),
		HasMore:    utils.GetHasMore(pagination.GetPage(), len(summaries), pagination.GetSize()),
	}
	if list.HasMore {
		list.Next = pagination.Next().GetQueryString()
	}
	return list, nil
}

func (u *labelingUC) GetAnnotations(ctx context.Context, videoID string) (*models.AnnotationList, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, errors.Wrapf(httpErrors.ErrInvalidID, "%q", videoID)
	}
	annotations, err := u.labelRepo.GetAnnotations(ctx, videoID)
	if err != nil {
		u.logger.Errorf("GetAnnotations - GetAnnotations error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.GetAnnotations")
	}
	return &models.AnnotationList{Annotations: annotations}, nil
}

func (u *labelingUC) SaveAnnotations(ctx context.Context, videoID string, list *models.AnnotationList) (*models.SavedAnnotations, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, errors.Wrapf(httpErrors.ErrInvalidID, "%q", videoID)
	}
	if list == nil {
		return nil, errors.Wrap(httpErrors.ErrBadRequest, "missing annotations")
	}
	if err := utils.ValidateStruct(ctx, list); err != nil {
		return nil, errors.Wrap(err, "labelingUC.SaveAnnotations.ValidateStruct")
	}
	if err := u.labelRepo.SaveAnnotations(ctx, videoID, list.Annotations); err != nil {
		u.logger.Errorf("SaveAnnotations - SaveAnnotations error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.SaveAnnotations")
	}
	return &models.SavedAnnotations{Saved: len(list.Annotations)}, nil
}

// Resegment recomputes the clip windows of a stored video. The original
// createdAt and any saved annotations are left untouched.
func (u *labelingUC) Resegment(ctx context.Context, videoID string, input *models.SegmentInput) (*models.VideoSummary, error) {
	if _, err := uuid.Parse(videoID); err != nil {
		return nil, errors.Wrapf(httpErrors.ErrNotFound, "video %q", videoID)
	}
	if input == nil {
		input = &models.SegmentInput{}
	}

	summary, err := u.labelRepo.GetSummary(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, "labelingUC.Resegment.GetSummary")
	}

	info, err := u.probe(ctx, objectKey(summary))
	if err != nil {
		u.logger.Errorf("Resegment - probe error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.Resegment.Probe")
	}

	params := clips.ResolveParams(*input, info.FPS, &summary.Segmentation, u.defaults())
	summary.Segmentation = clips.Segment(info.FPS, info.FrameCount, params.FramesPerClip, params.Stride)
	if summary.VideoURL == "" {
		summary.VideoURL = videoURLPrefix + videoID
	}

	if err = u.labelRepo.SaveSummary(ctx, summary); err != nil {
		u.logger.Errorf("Resegment - SaveSummary error: %v", err)
		return nil, errors.Wrap(err, "labelingUC.Resegment.SaveSummary")
	}
	u.logger.Infof("Resegment - %s now %d clips (framesPerClip=%d, stride=%d)", videoID, len(summary.Clips), params.FramesPerClip, params.Stride)
	return summary, nil
}

func (u *labelingUC) probe(ctx context.Context, key string) (*models.VideoInfo, error) {
	path, cleanup, err := u.objectRepo.FetchToFile(ctx, key)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return u.prober.Probe(ctx, path)
}

func objectKey(summary *models.VideoSummary) string {
	return summary.VideoID + "_" + summary.Filename
}

// cleanFilename keeps only the last path element of a client supplied name.
func cleanFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := filepath.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
