package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// newMCPServer builds the MCP server and registers the seven Instagram tools.
// Tool names and descriptions are the LLM-facing contract and stay stable.
func (s *Server) newMCPServer() *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "Instagram MCP Server",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "refresh_instagram_access_token",
		Description: "Refresh the long-lived Instagram access token, extending its validity period. No parameters are required.",
	}, s.handleRefreshToken)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "upload_image_without_caption",
		Description: "Upload an image to Instagram without caption and return the media container ID.",
	}, s.handleUploadImage)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "upload_image_with_caption",
		Description: "Upload an image to Instagram with a caption and return the media container ID.",
	}, s.handleUploadCaptionedImage)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "upload_carousel_post",
		Description: "Upload a carousel post (multiple images) to Instagram with a caption.",
	}, s.handleUploadCarousel)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "publish_media_container",
		Description: "Publish a previously uploaded Instagram media container.",
	}, s.handlePublish)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_instagram_account_info",
		Description: "Get Instagram account information including follower count and media count.",
	}, s.handleAccountInfo)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_recent_media",
		Description: "Get recent Instagram media posts.",
	}, s.handleRecentMedia)

	return srv
}

func (s *Server) handleRefreshToken(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	result, err := s.ig.RefreshAccessToken(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to refresh access token: %w", err)
	}
	return textResult("Access token refreshed successfully: %v", result), nil, nil
}

func (s *Server) handleUploadImage(ctx context.Context, _ *mcp.CallToolRequest, args UploadImageArgs) (*mcp.CallToolResult, any, error) {
	id, err := s.ig.CreateImageContainer(ctx, args.ImageURL, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return textResult("Image uploaded successfully. Media ID: %s", id), nil, nil
}

func (s *Server) handleUploadCaptionedImage(ctx context.Context, _ *mcp.CallToolRequest, args UploadCaptionedImageArgs) (*mcp.CallToolResult, any, error) {
	id, err := s.ig.CreateImageContainer(ctx, args.ImageURL, args.Caption)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upload image with caption: %w", err)
	}
	return textResult("Image with caption uploaded successfully. Media ID: %s", id), nil, nil
}

func (s *Server) handleUploadCarousel(ctx context.Context, _ *mcp.CallToolRequest, args CarouselArgs) (*mcp.CallToolResult, any, error) {
	id, err := s.ig.CreateCarouselContainer(ctx, args.Caption, args.ChildrenIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to upload carousel post: %w", err)
	}
	return textResult("Carousel post uploaded successfully. Media ID: %s", id), nil, nil
}

func (s *Server) handlePublish(ctx context.Context, _ *mcp.CallToolRequest, args PublishArgs) (*mcp.CallToolResult, any, error) {
	id, err := s.ig.PublishContainer(ctx, args.MediaID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to publish media: %w", err)
	}
	return textResult("Media published successfully. Post ID: %s", id), nil, nil
}

func (s *Server) handleAccountInfo(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	result, err := s.ig.AccountInfo(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account info: %w", err)
	}
	return textResult("Account Info: %v", result), nil, nil
}

func (s *Server) handleRecentMedia(ctx context.Context, _ *mcp.CallToolRequest, args RecentMediaArgs) (*mcp.CallToolResult, any, error) {
	result, err := s.ig.RecentMedia(ctx, args.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get recent media: %w", err)
	}
	data, ok := result["data"]
	if !ok {
		return nil, nil, fmt.Errorf("failed to get recent media: unexpected response %v", result)
	}
	return textResult("Recent Media: %v", data), nil, nil
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}
