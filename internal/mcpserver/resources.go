package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	stylesURI          = "higgsfield://styles"
	motionsURI         = "higgsfield://motions"
	charactersURI      = "higgsfield://characters"
	characterURIPrefix = charactersURI + "/"
	jsonMIME           = "application/json"

	resourceCharactersPageSize = 100
)

type styleView struct {
	StyleID     string `json:"style_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PreviewURL  string `json:"preview_url,omitempty"`
}

type motionView struct {
	MotionID      string `json:"motion_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PreviewURL    string `json:"preview_url,omitempty"`
	StartEndFrame bool   `json:"start_end_frame"`
}

func (s *Server) registerResources() {
	s.mcp.AddResource(mcp.NewResource(stylesURI, "Soul style presets",
		mcp.WithResourceDescription("Style presets usable as style_id in generate_image."),
		mcp.WithMIMEType(jsonMIME),
	), s.readStyles)

	s.mcp.AddResource(mcp.NewResource(motionsURI, "DoP motion presets",
		mcp.WithResourceDescription("Motion presets usable as motion_id in generate_video."),
		mcp.WithMIMEType(jsonMIME),
	), s.readMotions)

	s.mcp.AddResource(mcp.NewResource(charactersURI, "Character references",
		mcp.WithResourceDescription("Character references usable as character_id in generate_image."),
		mcp.WithMIMEType(jsonMIME),
	), s.readCharacters)

	s.mcp.AddResourceTemplate(mcp.NewResourceTemplate(characterURIPrefix+"{character_id}", "Character reference",
		mcp.WithTemplateDescription("A single character reference with its source images."),
		mcp.WithTemplateMIMEType(jsonMIME),
	), s.readCharacter)
}

func (s *Server) readStyles(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	styles, err := s.provider.ListStyles(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch styles: %w", err)
	}
	views := make([]styleView, 0, len(styles))
	for _, style := range styles {
		views = append(views, styleView{
			StyleID:     style.ID,
			Name:        style.Name,
			Description: style.Description,
			PreviewURL:  style.PreviewURL,
		})
	}
	return resourceJSON(req.Params.URI, map[string]any{
		"available_styles": views,
		"usage":            "Use style_id parameter in generate_image tool",
	})
}

func (s *Server) readMotions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	motions, err := s.provider.ListMotions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch motion presets: %w", err)
	}
	views := make([]motionView, 0, len(motions))
	for _, motion := range motions {
		views = append(views, motionView{
			MotionID:      motion.ID,
			Name:          motion.Name,
			Description:   motion.Description,
			PreviewURL:    motion.PreviewURL,
			StartEndFrame: motion.StartEndFrame,
		})
	}
	return resourceJSON(req.Params.URI, map[string]any{
		"available_motions": views,
		"usage":             "Use motion_id parameter in generate_video tool",
	})
}

func (s *Server) readCharacters(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	page, err := s.provider.ListCharacters(ctx, 1, resourceCharactersPageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch characters: %w", err)
	}
	return resourceJSON(req.Params.URI, map[string]any{
		"total_characters": page.Total,
		"characters":       summarizeCharacters(page.Items),
		"usage":            "Use character_id parameter in generate_image tool",
	})
}

func (s *Server) readCharacter(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, characterURIPrefix)
	if id == "" || id == req.Params.URI || strings.Contains(id, "/") {
		return nil, argumentError("invalid character resource uri %q", req.Params.URI)
	}
	character, err := s.provider.GetCharacter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch character %s: %w", id, err)
	}
	return resourceJSON(req.Params.URI, newCharacterDetail(character))
}

func resourceJSON(uri string, v any) ([]mcp.ResourceContents, error) {
	text, err := marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     text,
		},
	}, nil
}
