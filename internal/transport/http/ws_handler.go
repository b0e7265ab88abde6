package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"course-quiz-service/internal/app"
	"course-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz session per websocket connection: the subject
// receives questions one at a time, answers them, and gets the recorded
// attempt back on completion.
type WSHandler struct {
	service  *app.AttemptService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.AttemptService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Selected string `json:"selected"`
}

// questionPayload deliberately omits the correct answer.
type questionPayload struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Position int      `json:"position"` // questions answered so far
	Total    int      `json:"total"`
}

type answerResultPayload struct {
	QuestionID    string  `json:"questionId"`
	Selected      string  `json:"selected"`
	Correct       bool    `json:"correct"`
	PointsAwarded float64 `json:"pointsAwarded"`
	// CorrectOption is revealed only for wrong answers.
	CorrectOption string  `json:"correctOption,omitempty"`
	Score         float64 `json:"score"`
}

type finishedPayload struct {
	RecordID string                `json:"recordId,omitempty"`
	Score    float64               `json:"score"`
	MaxScore float64               `json:"maxScore"`
	Answers  []domain.AnswerRecord `json:"answers"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ServeWS upgrades HTTP requests to websockets and runs the question/answer
// loop. Writes happen only from this goroutine, so no writer pump is needed.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	setID := r.URL.Query().Get("setId")
	subjectID := r.URL.Query().Get("subjectId")
	if setID == "" || subjectID == "" {
		http.Error(w, "missing setId or subjectId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	begin, err := h.service.Begin(r.Context(), subjectID, setID)
	if err != nil {
		h.writeError(conn, err)
		return
	}
	sessionKey := begin.SessionKey
	// A dropped connection abandons whatever is left unanswered.
	defer func() { h.service.Abandon(sessionKey) }()

	h.writeQuestion(conn, begin.Question, begin.Position, begin.Total)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.write(conn, "error", errorPayload{Message: "invalid answer payload"})
				continue
			}

			outcome, recordID, err := h.service.Answer(r.Context(), sessionKey, payload.Selected)
			if errors.Is(err, domain.ErrStorageUnavailable) {
				// The attempt is finished and scored; only the write failed.
				h.writeAnswerResult(conn, outcome)
				h.write(conn, "error", errorPayload{Message: "attempt could not be saved", Retryable: true})
				continue
			}
			if err != nil {
				h.writeError(conn, err)
				continue
			}

			h.writeAnswerResult(conn, outcome)
			if outcome.Finished {
				h.write(conn, "finished", finishedPayload{
					RecordID: recordID,
					Score:    outcome.Result.Score,
					MaxScore: outcome.Result.MaxScore,
					Answers:  outcome.Result.Answers,
				})
			} else {
				h.writeQuestion(conn, *outcome.Next, outcome.Position, outcome.Total)
			}

		case "retry":
			recordID, err := h.service.Resubmit(r.Context(), sessionKey)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.write(conn, "saved", map[string]string{"recordId": recordID})

		case "restart":
			// Completed or not, the old session is discarded; a new attempt
			// never reuses its answer log.
			h.service.Abandon(sessionKey)
			begin, err := h.service.Begin(r.Context(), subjectID, setID)
			if err != nil {
				h.writeError(conn, err)
				return
			}
			sessionKey = begin.SessionKey
			h.writeQuestion(conn, begin.Question, begin.Position, begin.Total)

		case "abandon":
			h.service.Abandon(sessionKey)
			return

		default:
			h.write(conn, "error", errorPayload{Message: "unsupported message type"})
		}
	}
}

func (h *WSHandler) writeQuestion(conn *websocket.Conn, q domain.Question, position, total int) {
	h.write(conn, "question", questionPayload{
		ID:       q.ID,
		Text:     q.Text,
		Options:  q.Options,
		Position: position,
		Total:    total,
	})
}

func (h *WSHandler) writeAnswerResult(conn *websocket.Conn, outcome app.Outcome) {
	payload := answerResultPayload{
		QuestionID:    outcome.Answer.QuestionID,
		Selected:      outcome.Answer.SelectedOption,
		Correct:       outcome.Answer.IsCorrect,
		PointsAwarded: outcome.Answer.PointsAwarded,
		Score:         outcome.Score,
	}
	if !outcome.Answer.IsCorrect {
		payload.CorrectOption = outcome.Answer.CorrectOption
	}
	h.write(conn, "answerResult", payload)
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) {
	h.write(conn, "error", errorPayload{Message: err.Error()})
}

func (h *WSHandler) write(conn *websocket.Conn, msgType string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: msgType, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}
