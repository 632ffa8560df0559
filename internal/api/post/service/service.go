package postService

import (
	"context"
	"io"
	"mime/multipart"

	posts "AtelierAdmin/internal/api/post"
	"AtelierAdmin/internal/entity"
	"AtelierAdmin/pkg/cms"
	"AtelierAdmin/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IPostsService interface {
	GetAllPosts(ctx context.Context) (*posts.PostListResponse, error)
	GetPostByID(ctx context.Context, id string) (*entity.Post, error)
	CreatePost(ctx context.Context, req posts.SavePostRequest, imageFile *multipart.FileHeader) (*entity.Post, error)
	UpdatePost(ctx context.Context, id string, req posts.SavePostRequest, imageFile *multipart.FileHeader) (*entity.Post, error)
	DeletePost(ctx context.Context, id string) bool
}

// imageUploader is the slice of the asset workflow this service needs;
// satisfied by cms.AssetUploader.
type imageUploader interface {
	UploadImage(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
}

type postsService struct {
	log       *logrus.Logger
	cmsClient cms.ItfCMS
	uploader  imageUploader
	utils     utils.IUtils
}

func NewPostsService(
	log *logrus.Logger,
	cmsClient cms.ItfCMS,
	uploader imageUploader,
	utils utils.IUtils,
) IPostsService {
	return &postsService{
		log:       log,
		cmsClient: cmsClient,
		uploader:  uploader,
		utils:     utils,
	}
}
