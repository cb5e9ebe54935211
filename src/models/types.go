package models

import "encoding/json"

// UserInfo is the profile record the platform backend returns alongside a
// session token. Only the fields the dashboard actually reads are typed;
// the full payload is kept verbatim so unknown backend fields survive a
// store/load round trip.
type UserInfo struct {
	FirstName string
	Name      string
	Email     string

	raw json.RawMessage
}

func (u *UserInfo) UnmarshalJSON(data []byte) error {
	var known struct {
		FirstName string `json:"first_name"`
		Name      string `json:"name"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	u.FirstName = known.FirstName
	u.Name = known.Name
	u.Email = known.Email
	u.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (u UserInfo) MarshalJSON() ([]byte, error) {
	if len(u.raw) > 0 {
		return u.raw, nil
	}
	return json.Marshal(map[string]string{
		"first_name": u.FirstName,
		"name":       u.Name,
		"email":      u.Email,
	})
}

// DisplayName prefers the given name, falling back to the full name.
func (u UserInfo) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Name
}

func (u UserInfo) IsZero() bool {
	return u.FirstName == "" && u.Name == "" && u.Email == "" && len(u.raw) == 0
}

type Worker struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber int64  `json:"phone_number,omitempty"`
	DOB         string `json:"dob,omitempty"`
	Address     string `json:"address,omitempty"`
	ProfileImg  string `json:"profile_img,omitempty"`
	Gender      string `json:"gender,omitempty"`
	UserRoleID  string `json:"user_role_id"`
	Status      string `json:"status,omitempty"`
}

type WorkerStats struct {
	Active      int `json:"active"`
	Inactive    int `json:"inactive"`
	Remote      int `json:"remote"`
	OnVacation  int `json:"onvacation"`
	TotalWorker int `json:"totalWorker"`
}

type Question struct {
	ID           string `json:"_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
	IsSolved     bool   `json:"isSolved"`
	Origin       string `json:"origin"`
	CreatedAt    string `json:"createdAt"`
}

type TopicCount struct {
	ID       string `json:"_id"`
	FileName string `json:"fileName"`
	Amount   int    `json:"amount"`
}

type QuestionStats struct {
	Total int          `json:"total"`
	Topic []TopicCount `json:"topic"`
}

type EmotionSample struct {
	Emotion      string  `json:"emotion"`
	EmotionIndex float64 `json:"emotionIndex"`
	TotalWorkers int     `json:"totalWorkers"`
}

type HappinessDay struct {
	Date    string          `json:"date"`
	Emotion []EmotionSample `json:"emotion"`
}

type TaskTypeCompletion struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// DashboardData is the aggregate the backend serves for the overview page.
type DashboardData struct {
	WorkerStats         WorkerStats          `json:"workerStats"`
	QuestionsToResolve  []Question           `json:"questionsToResolve"`
	QuestionStats       QuestionStats        `json:"questionStats"`
	HappinessStats      []HappinessDay       `json:"happinessStats"`
	TaskTypeCompletions []TaskTypeCompletion `json:"taskTypeCompletions"`
}

type Task struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Type        string `json:"type"` // "urgent", "normal" or "onboarding"
	IsActive    string `json:"isActive"`
	CreatedBy   string `json:"createdBy"`
	WorkingDays string `json:"workingDays"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type FileMetadata struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type FileRecord struct {
	ID       string       `json:"id"`
	Metadata FileMetadata `json:"metadata"`
}

type FeedbackCategory struct {
	ID           string `json:"_id"`
	CategoryName string `json:"categoryName"`
}

type FeedbackEntry struct {
	ID         string             `json:"_id"`
	CategoryID []FeedbackCategory `json:"categoryId"`
	Question   string             `json:"question"`
	IsSolved   bool               `json:"isSolved"`
	Unknown    bool               `json:"unknown"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
}

type ChatMessage struct {
	Content  string `json:"content"`
	Received bool   `json:"received"`
}
