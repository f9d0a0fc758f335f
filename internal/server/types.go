package server

// Tool argument structs. The jsonschema tags become the advertised input
// schemas on tools/list.

type NoArgs struct{}

type UploadImageArgs struct {
    ImageURL string `json:"image_url" jsonschema:"the publicly accessible URL of the image to upload"`
}

type UploadCaptionedImageArgs struct {
    ImageURL string `json:"image_url" jsonschema:"the publicly accessible URL of the image to upload"`
    Caption  string `json:"caption" jsonschema:"the caption to attach to the image"`
}

type CarouselArgs struct {
    Caption     string   `json:"caption" jsonschema:"the caption for the carousel post"`
    ChildrenIDs []string `json:"children_ids" jsonschema:"list of media container IDs to include in the carousel"`
}

type PublishArgs struct {
    MediaID string `json:"media_id" jsonschema:"the media container ID to publish"`
}

type RecentMediaArgs struct {
    Limit int `json:"limit,omitempty" jsonschema:"number of recent posts to retrieve (default: 10)"`
}
