package server

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mhpenta/imagestudio"
)

// Handlers carries the dependencies shared by all routes.
type Handlers struct {
	manager  *imagestudio.Manager
	store    imagestudio.RenderedImageStore
	sessions *SessionRegistry
	logger   *slog.Logger
}

// NewHandlers wires the route handlers to a manager and a rendered-image
// store.
func NewHandlers(manager *imagestudio.Manager, store imagestudio.RenderedImageStore, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		manager:  manager,
		store:    store,
		sessions: NewSessionRegistry(),
		logger:   logger,
	}
}

// TextToImage handles POST /api/text-to-image.
func (h *Handlers) TextToImage(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	img, err := h.manager.Generate(c.Request.Context(), req.Prompt, nil)
	if err != nil {
		h.writeGenerationError(c, err, "Failed to generate image")
		return
	}

	h.archiveResult(c, img)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": img.DataURL(),
		"prompt":   req.Prompt,
		"mimeType": img.MIMEType,
	})
}

// EditImage handles POST /api/image-edit.
func (h *Handlers) EditImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	instructions := c.PostForm("instructions")
	if err != nil || strings.TrimSpace(instructions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image and instructions are required"})
		return
	}

	input, err := readUpload(file, header)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image and instructions are required"})
		return
	}

	img, err := h.manager.Edit(c.Request.Context(), input, instructions, nil)
	if err != nil {
		h.writeGenerationError(c, err, "Failed to edit image")
		return
	}

	h.archiveResult(c, img)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"imageUrl":     img.DataURL(),
		"instructions": instructions,
		"mimeType":     img.MIMEType,
	})
}

// ComposeImages handles POST /api/multi-image.
func (h *Handlers) ComposeImages(c *gin.Context) {
	form, err := c.MultipartForm()
	instructions := c.PostForm("instructions")
	if err != nil || len(form.File["images"]) == 0 || strings.TrimSpace(instructions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Images and instructions are required"})
		return
	}

	files := form.File["images"]
	inputs := make([]imagestudio.InputImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Images and instructions are required"})
			return
		}
		input, err := readUpload(f, fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Images and instructions are required"})
			return
		}
		inputs = append(inputs, input)
	}

	img, err := h.manager.Compose(c.Request.Context(), inputs, instructions, nil)
	if err != nil {
		h.writeGenerationError(c, err, "Failed to compose images")
		return
	}

	h.archiveResult(c, img)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"imageUrl":     img.DataURL(),
		"instructions": instructions,
		"imageCount":   len(inputs),
		"mimeType":     img.MIMEType,
	})
}

// CreateConversation handles POST /api/conversations. A multipart request
// starts a conversation from an uploaded image; a JSON request with a data
// URL adopts a result produced by one of the other modes.
func (h *Handlers) CreateConversation(c *gin.Context) {
	sess := h.manager.StartRefinement(imagestudio.SessionWithImageStore(h.store))

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, header, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		input, err := readUpload(file, header)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		if err := sess.Begin(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		var req struct {
			ImageURL string `json:"imageUrl"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		img, err := imagestudio.ParseDataURL(req.ImageURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := sess.Adopt(img); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	id := h.sessions.Add(sess)

	c.JSON(http.StatusOK, gin.H{
		"conversationId": id,
		"history":        apiHistory(sess.History()),
	})
}

// SendTurn handles POST /api/conversations/:id/messages.
func (h *Handlers) SendTurn(c *gin.Context) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	var req struct {
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Instructions) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Instructions are required"})
		return
	}

	img, err := sess.Send(c.Request.Context(), req.Instructions)
	if err != nil {
		switch {
		case errors.Is(err, imagestudio.ErrTurnInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "A turn is already being processed"})
		case errors.Is(err, imagestudio.ErrNoBaseImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case imagestudio.IsInvalidInput(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.writeGenerationError(c, err, "Failed to refine image")
		}
		return
	}

	h.archiveResult(c, img)

	history := sess.History()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": imageURL(history[len(history)-1].ImageRef, img),
		"mimeType": img.MIMEType,
		"messages": apiHistory(lastTurn(history)),
	})
}

// GetConversation handles GET /api/conversations/:id.
func (h *Handlers) GetConversation(c *gin.Context) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	resp := gin.H{
		"conversationId": c.Param("id"),
		"history":        apiHistory(sess.History()),
		"processing":     sess.Processing(),
	}
	if err := sess.LastError(); err != nil {
		resp["lastError"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// ResetConversation handles POST /api/conversations/:id/reset.
func (h *Handlers) ResetConversation(c *gin.Context) {
	sess, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	sess.Reset()

	c.JSON(http.StatusOK, gin.H{
		"conversationId": c.Param("id"),
		"history":        apiHistory(sess.History()),
	})
}

// DeleteConversation handles DELETE /api/conversations/:id.
func (h *Handlers) DeleteConversation(c *gin.Context) {
	if !h.sessions.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetImage handles GET /api/images/:id, serving the raw blob.
func (h *Handlers) GetImage(c *gin.Context) {
	img, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.Data(http.StatusOK, img.MIMEType, img.Data)
}

// writeGenerationError maps a failed call onto the wire: validation errors
// are client errors, the three extraction kinds keep their distinct
// messages, everything else carries the summary plus the fault detail.
func (h *Handlers) writeGenerationError(c *gin.Context, err error, summary string) {
	if imagestudio.IsInvalidInput(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch {
	case errors.Is(err, imagestudio.ErrNoCandidates):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No candidates returned from model"})
	case errors.Is(err, imagestudio.ErrNoParts):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No parts returned from model"})
	case errors.Is(err, imagestudio.ErrNoImageData):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No image data found in response"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   summary,
			"details": err.Error(),
		})
	}
}

// archiveResult saves a successful generation to the configured storage.
// Archiving is best-effort: failures are logged and never affect the
// response.
func (h *Handlers) archiveResult(c *gin.Context, img *imagestudio.GeneratedImage) {
	path := "images/" + time.Now().UTC().Format("2006/01/02") + "/" + uuid.New().String()
	if _, err := h.manager.SaveResult(c.Request.Context(), img, path); err != nil {
		if !errors.Is(err, imagestudio.ErrStorageNotConfigured) {
			h.logger.Warn("failed to archive image", "error", err.Error())
		}
	}
}

// readUpload drains one uploaded file into an input image, taking the MIME
// type from the part header and sniffing it from the bytes when absent.
func readUpload(file multipart.File, header *multipart.FileHeader) (imagestudio.InputImage, error) {
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return imagestudio.InputImage{}, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return imagestudio.InputImage{Data: data, MIMEType: mimeType}, nil
}

// apiMessage is the transcript entry shape on the wire.
type apiMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func apiHistory(history []imagestudio.Message) []apiMessage {
	out := make([]apiMessage, 0, len(history))
	for _, msg := range history {
		m := apiMessage{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
		}
		if msg.ImageRef != "" {
			m.ImageURL = "/api/images/" + msg.ImageRef
		}
		out = append(out, m)
	}
	return out
}

// lastTurn returns the trailing user/assistant pair of a transcript.
func lastTurn(history []imagestudio.Message) []imagestudio.Message {
	if len(history) < 2 {
		return history
	}
	return history[len(history)-2:]
}

// imageURL prefers the stored blob route and falls back to an inline data
// URL when the image was not retained.
func imageURL(ref string, img *imagestudio.GeneratedImage) string {
	if ref != "" {
		return "/api/images/" + ref
	}
	return img.DataURL()
}
