package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hirestage/hirestage/internal/models"
	"github.com/hirestage/hirestage/internal/resume"
	"github.com/hirestage/hirestage/internal/services"
	"github.com/hirestage/hirestage/internal/utils"
)

const maxResumeBytes = 10 << 20
const maxAudioBytes = 10 << 20

// RoomHandler serves the live interview room: resume upload, the
// question loop, and the audio endpoints.
type RoomHandler struct {
	rooms      services.RoomService
	interviews services.InterviewService
}

func NewRoomHandler(rooms services.RoomService, interviews services.InterviewService) *RoomHandler {
	return &RoomHandler{rooms: rooms, interviews: interviews}
}

// authorize checks that the caller owns the interview or is an admin.
func (h *RoomHandler) authorize(c *gin.Context, op string) (*models.Interview, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return nil, false
	}

	iv, err := h.interviews.Get(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if iv.CandidateID != userID && !isAdmin(c) {
		writeError(c, utils.E(utils.CodeForbidden, op, "forbidden", nil))
		return nil, false
	}
	return iv, true
}

func (h *RoomHandler) UploadResume(c *gin.Context) {
	const op = "RoomHandler.UploadResume"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'resume'", err))
		return
	}
	if !resume.SupportedExt(fh.Filename) {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "unsupported resume format (use PDF or DOCX)", nil))
		return
	}
	if fh.Size <= 0 {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil))
		return
	}
	if fh.Size > maxResumeBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
		return
	}
	if len(data) > maxResumeBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	iv, err := h.rooms.UploadResume(c.Request.Context(), c.Param("interview_id"), fh.Filename, mimeType, len(data), data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interview":       iv,
		"questions_count": len(iv.Questions),
	})
}

func (h *RoomHandler) Start(c *gin.Context) {
	const op = "RoomHandler.Start"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	iv, err := h.rooms.Start(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interview":        iv,
		"current_question": iv.Questions[0],
		"question_index":   0,
		"total_questions":  len(iv.Questions),
	})
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

func (h *RoomHandler) NextQuestion(c *gin.Context) {
	const op = "RoomHandler.NextQuestion"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	res, err := h.rooms.SubmitAnswer(c.Request.Context(), c.Param("interview_id"), req.Answer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RoomHandler) ResumeURL(c *gin.Context) {
	const op = "RoomHandler.ResumeURL"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	url, err := h.rooms.ResumeDownloadURL(c.Request.Context(), c.Param("interview_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resume_url": url})
}

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64" binding:"required"`
	Language    string `json:"language"`
}

// Transcribe accepts a multipart `audio` field; JSON with base64 audio
// is also accepted for clients that cannot send multipart.
func (h *RoomHandler) Transcribe(c *gin.Context) {
	const op = "RoomHandler.Transcribe"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	var (
		audio    []byte
		language string
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("audio")
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'audio'", err))
			return
		}
		if fh.Size <= 0 {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio is empty", nil))
			return
		}
		if fh.Size > maxAudioBytes {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio too large (max 10MB)", nil))
			return
		}
		file, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
			return
		}
		defer file.Close()

		audio, err = io.ReadAll(io.LimitReader(file, maxAudioBytes))
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to read upload", err))
			return
		}
		language = c.PostForm("language")
	} else {
		var req TranscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
			return
		}

		raw := req.AudioBase64
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:] // strip data:...;base64,
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid audio_base64", err))
			return
		}
		if len(decoded) > maxAudioBytes {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "audio too large (max 10MB)", nil))
			return
		}
		audio = decoded
		language = req.Language
	}

	text, conf, err := h.rooms.Transcribe(c.Request.Context(), c.Param("interview_id"), audio, language)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": text,
		"confidence":    conf,
	})
}

type SpeakRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
}

func (h *RoomHandler) Speak(c *gin.Context) {
	const op = "RoomHandler.Speak"

	if _, ok := h.authorize(c, op); !ok {
		return
	}

	var req SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	url, err := h.rooms.SpeakText(c.Request.Context(), c.Param("interview_id"), req.Text, req.Language)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio_url": url})
}
