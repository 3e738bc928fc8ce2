package recommendation

import (
	"NutriMind-Backend/domain"
	"NutriMind-Backend/entities"
	"NutriMind-Backend/internal/utils"
	"NutriMind-Backend/internal/utils/mailing"
	"NutriMind-Backend/internal/utils/storage"
	"NutriMind-Backend/pkg/markdown"
	"NutriMind-Backend/pkg/profile"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecommendationService interface {
		Generate(ctx context.Context, userID string, profileID string, data domain.ProfileData) (string, string, error)
		GetCurrent(ctx context.Context, userID string) (*domain.RecommendationResponse, error)
		History(ctx context.Context, userID string, page, limit int) ([]domain.HistoryItem, int64, error)
		PrintDocument(ctx context.Context, userID, recommendationID string) (string, error)
		Export(ctx context.Context, userID, recommendationID string) (string, error)
		Email(ctx context.Context, userID, recommendationID, toEmail string) error
	}

	recommendationService struct {
		recommendationRepository RecommendationRepository
		profileRepository        profile.ProfileRepository
		s3                       storage.AwsS3
	}
)

func NewRecommendationService(
	recommendationRepository RecommendationRepository,
	profileRepository profile.ProfileRepository,
	s3 storage.AwsS3,
) RecommendationService {
	return &recommendationService{
		recommendationRepository: recommendationRepository,
		profileRepository:        profileRepository,
		s3:                       s3,
	}
}

// Generate calls the Gemini API for a personalized dietary recommendation,
// then persists it via the archive-then-insert protocol so at most one
// recommendation per user stays active, and links it to the profile.
func (s *recommendationService) Generate(ctx context.Context, userID string, profileID string, data domain.ProfileData) (string, string, error) {
	text, err := s.generateDietRecommendation(ctx, data)
	if err != nil {
		return "", "", err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", "", domain.ErrParseUUID
	}
	profileUUID, err := uuid.Parse(profileID)
	if err != nil {
		return "", "", domain.ErrParseUUID
	}

	if err := s.recommendationRepository.ArchiveActive(ctx, userID); err != nil {
		return "", "", err
	}

	snapshot, _ := json.Marshal(data)
	now := time.Now()
	recommendation := &entities.DietRecommendation{
		ID:                 uuid.New(),
		UserID:             userUUID,
		ProfileID:          profileUUID,
		RecommendationText: text,
		ProfileSnapshot:    string(snapshot),
		Status:             domain.RecommendationStatusActive,
		GeneratedAt:        now,
		Timestamp:          entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.recommendationRepository.Create(ctx, recommendation); err != nil {
		return "", "", err
	}

	// Linking is best-effort; the recommendation itself is already live.
	_ = s.profileRepository.LinkRecommendation(ctx, profileUUID, recommendation.ID)

	return recommendation.ID.String(), text, nil
}

func (s *recommendationService) generateDietRecommendation(ctx context.Context, data domain.ProfileData) (string, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return "", fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	restrictions := strings.Join(data.DietaryRestrictions, ", ")
	if restrictions == "" {
		restrictions = "None"
	}
	medical := data.MedicalConditions
	if medical == "" {
		medical = "None mentioned"
	}
	additional := data.AdditionalInfo
	if additional == "" {
		additional = "None"
	}

	prompt := fmt.Sprintf(
		"You are a professional nutritionist and dietitian with expertise in creating personalized "+
			"dietary recommendations. Provide comprehensive, evidence-based advice that is practical "+
			"and achievable for the individual.\n\n"+
			"Based on the following user information, create a comprehensive, personalized dietary recommendation:\n\n"+
			"Personal Details:\n"+
			"- Name: %s\n- Age: %s\n- Gender: %s\n- Weight: %s\n- Height: %s\n- Activity Level: %s\n\n"+
			"Dietary Information:\n"+
			"- Current Diet: %s\n- Dietary Restrictions: %s\n- Meals per Day: %s\n- Cooking Time Available: %s\n- Budget: %s\n\n"+
			"Health & Goals:\n"+
			"- Health Goals: %s\n- Medical Conditions: %s\n- Food Preferences: %s\n- Additional Information: %s\n\n"+
			"Please provide a detailed dietary recommendation that includes:\n"+
			"1. A summary of their current situation\n"+
			"2. Specific dietary recommendations tailored to their goals\n"+
			"3. Sample meal ideas for different times of day\n"+
			"4. Nutritional guidelines and portion suggestions\n"+
			"5. Tips for implementation and sustainability\n"+
			"6. Any important considerations based on their restrictions or conditions\n\n"+
			"Format the response in a clear, encouraging, and actionable way using markdown formatting for headers and lists.",
		data.Name, data.Age, data.Gender, data.Weight, data.Height, data.ActivityLevel,
		data.CurrentDiet, restrictions, data.MealsPerDay, data.CookingTime, data.Budget,
		data.HealthGoals, medical, data.FoodPreferences, additional,
	)

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": prompt,
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.7,
			"topP":            0.8,
			"topK":            40,
			"maxOutputTokens": 2048,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	geminiReq, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	geminiReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(geminiReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: %s - %s", domain.ErrGenerationFailed, resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrEmptyRecommendation
	}

	text := strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", domain.ErrEmptyRecommendation
	}
	return text, nil
}

func (s *recommendationService) GetCurrent(ctx context.Context, userID string) (*domain.RecommendationResponse, error) {
	recommendation, err := s.recommendationRepository.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, err
	}

	return &domain.RecommendationResponse{
		ID:          recommendation.ID.String(),
		ProfileID:   recommendation.ProfileID.String(),
		Text:        recommendation.RecommendationText,
		Status:      recommendation.Status,
		GeneratedAt: recommendation.GeneratedAt,
	}, nil
}

// History returns the user's recommendations newest first, each with the
// profile snapshot that produced it and a five-line excerpt. Read-only.
func (s *recommendationService) History(ctx context.Context, userID string, page, limit int) ([]domain.HistoryItem, int64, error) {
	recommendations, count, err := s.recommendationRepository.GetHistory(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.HistoryItem, 0, len(recommendations))
	for _, recommendation := range recommendations {
		var snapshot domain.ProfileData
		if recommendation.ProfileSnapshot != "" {
			_ = json.Unmarshal([]byte(recommendation.ProfileSnapshot), &snapshot)
		}

		preview, truncated := markdown.FirstLines(recommendation.RecommendationText, 5)
		items = append(items, domain.HistoryItem{
			ID:          recommendation.ID.String(),
			GeneratedAt: recommendation.GeneratedAt,
			Status:      recommendation.Status,
			IsCurrent:   recommendation.Status == domain.RecommendationStatusActive,
			Preview:     preview,
			Truncated:   truncated,
			Profile:     snapshot,
		})
	}

	return items, count, nil
}

func (s *recommendationService) getOwned(ctx context.Context, userID, recommendationID string) (*entities.DietRecommendation, error) {
	recommendation, err := s.recommendationRepository.GetByID(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, err
	}
	if recommendation.UserID.String() != userID {
		return nil, domain.ErrUserNotAllowed
	}
	return recommendation, nil
}

// PrintDocument renders a standalone printable HTML document for the
// recommendation.
func (s *recommendationService) PrintDocument(ctx context.Context, userID, recommendationID string) (string, error) {
	recommendation, err := s.getOwned(ctx, userID, recommendationID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\">")
	sb.WriteString("<title>Your Diet Recommendation</title></head><body>")
	sb.WriteString(markdown.PrintHTML(recommendation.RecommendationText))
	sb.WriteString(fmt.Sprintf("<p><small>Generated at %s</small></p>", recommendation.GeneratedAt.Format("2006-01-02 15:04")))
	sb.WriteString("</body></html>")
	return sb.String(), nil
}

// Export uploads the printable document to S3 and returns its URL.
func (s *recommendationService) Export(ctx context.Context, userID, recommendationID string) (string, error) {
	document, err := s.PrintDocument(ctx, userID, recommendationID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/%s/%s.html", userID, recommendationID)
	url, err := s.s3.UploadFile(ctx, key, "text/html", []byte(document))
	if err != nil {
		return "", err
	}
	return url, nil
}

func (s *recommendationService) Email(ctx context.Context, userID, recommendationID, toEmail string) error {
	document, err := s.PrintDocument(ctx, userID, recommendationID)
	if err != nil {
		return err
	}
	return mailing.SendMail(toEmail, "Your Personalized Diet Recommendation", document)
}
