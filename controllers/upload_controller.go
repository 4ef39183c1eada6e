package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/services"
)

// UploadController consumes S3 event notifications for completed image
// uploads and attaches the images to their owning entity. The object key
// shape decides the routing:
//
//	images/{username}/profile/picture          -> profile image update
//	images/{username}/posts/{postId}/{slot}    -> post image attachment
type UploadController struct {
	Users        *services.UserService
	Posts        *services.PostService
	Objects      services.ObjectStore
	ImageBaseURL string
}

// NewUploadController creates an UploadController.
func NewUploadController(users *services.UserService, posts *services.PostService, objects services.ObjectStore, imageBaseURL string) *UploadController {
	return &UploadController{Users: users, Posts: posts, Objects: objects, ImageBaseURL: imageBaseURL}
}

// s3Notification mirrors the relevant subset of the S3 event payload.
type s3Notification struct {
	Records []struct {
		S3 struct {
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// HandleNotification processes an S3 upload notification. Keys with an
// unrecognized shape are acknowledged and ignored so the bucket never
// retries them.
func (c *UploadController) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var notification s3Notification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid notification payload")
		return
	}

	for _, record := range notification.Records {
		key := record.S3.Object.Key
		if key == "" {
			continue
		}
		if err := c.processObject(r.Context(), key); err != nil {
			log.Printf("Failed to process uploaded object '%s': %v", key, err)
			WriteErrorResponse(w, http.StatusInternalServerError, "Failed to process upload.")
			return
		}
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Processed."})
}

func (c *UploadController) processObject(ctx context.Context, key string) error {
	image, ok, err := c.imageFromObject(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		// Dimensions missing from metadata; nothing to attach.
		return nil
	}

	parts := strings.Split(key, "/")
	switch {
	case strings.Contains(key, "profile/picture") && len(parts) >= 2:
		return c.Users.UpdateProfileImage(ctx, parts[1], image)

	case len(parts) == 5 && parts[0] == "images" && parts[2] == "posts":
		username, postID, slot := parts[1], parts[3], parts[4]
		if slot != models.ImageSlotPrimary && slot != models.ImageSlotSecondary {
			return nil
		}
		return c.Posts.AttachImage(ctx, username, postID, image, slot)

	default:
		return nil
	}
}

// imageFromObject builds the Image descriptor for a stored object from its
// metadata and the public image URL.
func (c *UploadController) imageFromObject(ctx context.Context, key string) (models.Image, bool, error) {
	metadata, err := c.Objects.GetObjectMetadata(ctx, key)
	if err != nil {
		return models.Image{}, false, err
	}

	width, werr := strconv.Atoi(metadata[models.WidthMetadataHeader])
	height, herr := strconv.Atoi(metadata[models.HeightMetadataHeader])
	if werr != nil || herr != nil || width == 0 || height == 0 {
		return models.Image{}, false, nil
	}

	url := c.ImageBaseURL + "/" + key
	if c.ImageBaseURL == "" {
		url, err = c.Objects.GenerateReadURL(ctx, key)
		if err != nil {
			return models.Image{}, false, err
		}
	}
	return models.Image{Image: url, Width: width, Height: height}, true, nil
}
