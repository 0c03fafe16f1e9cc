package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"higgsfield-mcp/internal/domain"
	"higgsfield-mcp/internal/providers/higgsfield"
)

const listCharactersPageSize = 50

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("generate_image",
		mcp.WithDescription("Generate a high-quality image from a text prompt using the Soul model. "+
			"Starts an asynchronous job; poll get_generation_status with the returned job_set_id."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("Detailed text description of the image to generate."),
		),
		mcp.WithString("quality",
			mcp.DefaultString(higgsfield.DefaultImageQuality),
			mcp.Enum("720p", "1080p"),
			mcp.Description("Image quality."),
		),
		mcp.WithString("character_id",
			mcp.Description("Optional character reference ID for consistent character generation."),
		),
		mcp.WithString("style_id",
			mcp.Description("Optional style preset ID. Browse the higgsfield://styles resource."),
		),
		mcp.WithString("width_and_height",
			mcp.DefaultString(higgsfield.DefaultImageSize),
			mcp.Description("Output dimensions as WIDTHxHEIGHT."),
		),
		mcp.WithNumber("batch_size",
			mcp.DefaultNumber(1),
			mcp.Description("Number of images to generate: 1 or 4."),
		),
		mcp.WithBoolean("enhance_prompt",
			mcp.DefaultBool(false),
			mcp.Description("Let the provider rewrite the prompt for better results."),
		),
	), s.handleGenerateImage)

	s.mcp.AddTool(mcp.NewTool("generate_video",
		mcp.WithDescription("Convert an image into a 5-second cinematic video with a motion preset using the DoP model. "+
			"Starts an asynchronous job; poll get_generation_status with the returned job_set_id."),
		mcp.WithString("image_url",
			mcp.Required(),
			mcp.Description("HTTPS URL of the source image to animate."),
		),
		mcp.WithString("motion_id",
			mcp.Required(),
			mcp.Description("Motion preset ID. Browse the higgsfield://motions resource."),
		),
		mcp.WithString("prompt",
			mcp.Description("Optional description of the motion. Defaults to \""+higgsfield.DefaultVideoPrompt+"\"."),
		),
		mcp.WithString("quality",
			mcp.DefaultString(higgsfield.DefaultVideoQuality),
			mcp.Enum("lite", "turbo", "standard"),
			mcp.Description("lite is cheapest, turbo is faster, standard is highest quality."),
		),
	), s.handleGenerateVideo)

	s.mcp.AddTool(mcp.NewTool("create_character",
		mcp.WithDescription("Create a reusable character reference from 1-5 clear face images. "+
			"Use the returned character_id with generate_image. Processing takes a few minutes."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Descriptive name for the character reference."),
		),
		mcp.WithArray("image_urls",
			mcp.Required(),
			mcp.Description("1 to 5 image URLs showing the character's face."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleCreateCharacter)

	s.mcp.AddTool(mcp.NewTool("get_generation_status",
		mcp.WithDescription("Check the status of an image or video job set and retrieve result URLs once completed. "+
			"Statuses: queued, in_progress, completed, failed, nsfw."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("job_set_id",
			mcp.Required(),
			mcp.Description("The job_set_id returned by generate_image or generate_video."),
		),
	), s.handleGetGenerationStatus)

	s.mcp.AddTool(mcp.NewTool("list_characters",
		mcp.WithDescription("List the character references on this account with their status."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("page",
			mcp.DefaultNumber(1),
			mcp.Description("Page number, starting at 1."),
		),
		mcp.WithNumber("page_size",
			mcp.DefaultNumber(listCharactersPageSize),
			mcp.Description("Items per page."),
		),
	), s.handleListCharacters)

	s.mcp.AddTool(mcp.NewTool("get_character",
		mcp.WithDescription("Get a character reference including its source images."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("character_id",
			mcp.Required(),
			mcp.Description("Character reference ID."),
		),
	), s.handleGetCharacter)

	s.mcp.AddTool(mcp.NewTool("delete_character",
		mcp.WithDescription("Delete a character reference. This cannot be undone."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("character_id",
			mcp.Required(),
			mcp.Description("Character reference ID to delete."),
		),
	), s.handleDeleteCharacter)
}

func (s *Server) handleGenerateImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to start image generation"
	args := arguments(req.GetArguments())

	prompt, err := args.requireString("prompt")
	if err != nil {
		return errorResult(failure, err), nil
	}
	imageReq := higgsfield.ImageRequest{Prompt: prompt}
	if imageReq.Quality, err = args.optionalString("quality", higgsfield.DefaultImageQuality); err != nil {
		return errorResult(failure, err), nil
	}
	if imageReq.CustomReferenceID, err = args.optionalString("character_id", ""); err != nil {
		return errorResult(failure, err), nil
	}
	if imageReq.StyleID, err = args.optionalString("style_id", ""); err != nil {
		return errorResult(failure, err), nil
	}
	if imageReq.WidthAndHeight, err = args.optionalString("width_and_height", higgsfield.DefaultImageSize); err != nil {
		return errorResult(failure, err), nil
	}
	if imageReq.BatchSize, err = args.optionalInt("batch_size", 1); err != nil {
		return errorResult(failure, err), nil
	}
	if imageReq.EnhancePrompt, err = args.optionalBool("enhance_prompt", false); err != nil {
		return errorResult(failure, err), nil
	}

	set, err := s.provider.GenerateImage(ctx, imageReq)
	if err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(newGenerationStarted(set))
}

func (s *Server) handleGenerateVideo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to start video generation"
	args := arguments(req.GetArguments())

	imageURL, err := args.requireString("image_url")
	if err != nil {
		return errorResult(failure, err), nil
	}
	motionID, err := args.requireString("motion_id")
	if err != nil {
		return errorResult(failure, err), nil
	}
	prompt, err := args.optionalString("prompt", "")
	if err != nil {
		return errorResult(failure, err), nil
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = higgsfield.DefaultVideoPrompt
	}
	quality, err := args.optionalString("quality", higgsfield.DefaultVideoQuality)
	if err != nil {
		return errorResult(failure, err), nil
	}

	set, err := s.provider.GenerateVideo(ctx, higgsfield.VideoRequest{
		ImageURL: imageURL,
		MotionID: motionID,
		Prompt:   prompt,
		Quality:  quality,
	})
	if err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(newGenerationStarted(set))
}

func (s *Server) handleCreateCharacter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to create character reference"
	args := arguments(req.GetArguments())

	name, err := args.requireString("name")
	if err != nil {
		return errorResult(failure, err), nil
	}
	urls, err := args.requireStringSlice("image_urls")
	if err != nil {
		return errorResult(failure, err), nil
	}
	if len(urls) == 0 || len(urls) > domain.MaxCharacterImages {
		return errorResult(failure, argumentError("image_urls must contain 1 to %d urls, got %d", domain.MaxCharacterImages, len(urls))), nil
	}

	character, err := s.provider.CreateCharacter(ctx, name, urls)
	if err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(characterCreated{
		Success:     true,
		CharacterID: character.ID,
		Name:        character.Name,
		Status:      string(character.Status),
		CreatedAt:   character.CreatedAt,
		Message:     "Character creation started. Status will progress: not_ready -> queued -> in_progress -> completed",
		Note:        "Use list_characters or get_character to check when it is ready",
	})
}

func (s *Server) handleGetGenerationStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to retrieve job status"
	args := arguments(req.GetArguments())

	id, err := args.requireString("job_set_id")
	if err != nil {
		return errorResult(failure, err), nil
	}
	set, err := s.provider.GetJobSet(ctx, id)
	if err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(newGenerationStatus(set))
}

func (s *Server) handleListCharacters(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to list characters"
	args := arguments(req.GetArguments())

	page, err := args.optionalInt("page", 1)
	if err != nil {
		return errorResult(failure, err), nil
	}
	pageSize, err := args.optionalInt("page_size", listCharactersPageSize)
	if err != nil {
		return errorResult(failure, err), nil
	}
	if page < 1 || pageSize < 1 {
		return errorResult(failure, argumentError("page and page_size must be positive")), nil
	}

	result, err := s.provider.ListCharacters(ctx, page, pageSize)
	if err != nil {
		return errorResult(failure, err), nil
	}
	characters := summarizeCharacters(result.Items)
	return jsonResult(characterList{
		Success:    true,
		Total:      result.Total,
		Characters: characters,
		Message:    fmt.Sprintf("Found %d character reference(s)", len(characters)),
	})
}

func (s *Server) handleGetCharacter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to get character"
	args := arguments(req.GetArguments())

	id, err := args.requireString("character_id")
	if err != nil {
		return errorResult(failure, err), nil
	}
	character, err := s.provider.GetCharacter(ctx, id)
	if err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(newCharacterDetail(character))
}

func (s *Server) handleDeleteCharacter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const failure = "Failed to delete character"
	args := arguments(req.GetArguments())

	id, err := args.requireString("character_id")
	if err != nil {
		return errorResult(failure, err), nil
	}
	if err := s.provider.DeleteCharacter(ctx, id); err != nil {
		return errorResult(failure, err), nil
	}
	return jsonResult(map[string]any{
		"success":      true,
		"character_id": id,
		"message":      "Character reference deleted",
	})
}
