package gemini

import (
	"github.com/mhpenta/imagestudio"
	"google.golang.org/genai"
)

// ExtractImage walks the response envelope and returns the first inline
// image it finds. Every level of the envelope may be absent; each absence
// maps to its own error kind so callers can report precisely what went
// wrong:
//
//   - zero candidates            -> imagestudio.ErrNoCandidates
//   - candidate without parts    -> imagestudio.ErrNoParts
//   - parts without inline data  -> imagestudio.ErrNoImageData
//
// Only the first candidate is considered, and only the first part carrying
// inline data is used; trailing parts (such as text commentary) are
// discarded. A missing media type defaults to image/png.
//
// ExtractImage is a pure function of the envelope: re-running it on the same
// response yields the same result.
func ExtractImage(resp *genai.GenerateContentResponse) (*imagestudio.GeneratedImage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, imagestudio.ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, imagestudio.ErrNoParts
	}

	for _, part := range candidate.Content.Parts {
		if part == nil || part.InlineData == nil || part.InlineData.Data == nil {
			continue
		}

		mimeType := part.InlineData.MIMEType
		if mimeType == "" {
			mimeType = imagestudio.DefaultMIMEType
		}

		return &imagestudio.GeneratedImage{
			Data:     part.InlineData.Data,
			MIMEType: mimeType,
		}, nil
	}

	return nil, imagestudio.ErrNoImageData
}
