package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"talenthub_backend/internal/model"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/util"
	"talenthub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InterviewService drives a single interview instance through its lifecycle:
// scheduled -> in_progress -> completed, terminal. How the instance was created
// (auto-scheduler, direct, coding) is irrelevant here; the adapters have
// already folded every flavor into the common entity.
type InterviewService struct {
	DB            *gorm.DB
	InterviewRepo *repository.InterviewRepository
	CandidateRepo *repository.CandidateRepository
	CampaignRepo  *repository.CampaignRepository
	Resolver      *QuestionResolver
	Scorer        Scorer
	BaseURL       string
}

func NewInterviewService(
	db *gorm.DB,
	interviewRepo *repository.InterviewRepository,
	candidateRepo *repository.CandidateRepository,
	campaignRepo *repository.CampaignRepository,
	resolver *QuestionResolver,
	scorer Scorer,
	baseURL string,
) *InterviewService {
	return &InterviewService{
		DB:            db,
		InterviewRepo: interviewRepo,
		CandidateRepo: candidateRepo,
		CampaignRepo:  campaignRepo,
		Resolver:      resolver,
		Scorer:        scorer,
		BaseURL:       baseURL,
	}
}

// Start moves a scheduled interview to in_progress. Calling it on an interview
// that is already in progress is idempotent and returns the existing state;
// calling it on a completed one is rejected. Concurrent starts converge: the
// check-and-set lets exactly one caller through and every other caller reads
// the winner's state.
func (s *InterviewService) Start(ctx context.Context, id string) (*model.InterviewInstance, error) {
	inst, err := s.InterviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}

	switch inst.Status {
	case model.StatusCompleted:
		return nil, util.ErrRestartCompleted
	case model.StatusInProgress:
		return inst, nil
	}

	now := time.Now()
	rows, err := s.InterviewRepo.MarkStarted(id, map[string]interface{}{
		"status":     model.StatusInProgress,
		"started_at": now,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race: someone else started (or completed) it first.
		current, err := s.InterviewRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if current.Status == model.StatusCompleted {
			return nil, util.ErrRestartCompleted
		}
		return current, nil
	}

	return s.InterviewRepo.FindByID(id)
}

// SaveProgress overwrites the stored partial answer payload and elapsed time.
// Each call replaces the previous snapshot entirely, it is not additive.
// Allowed only while in progress; no status change.
func (s *InterviewService) SaveProgress(ctx context.Context, id string, answers []model.AnswerRecord, elapsedSeconds int) error {
	inst, err := s.InterviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrInterviewNotFound
		}
		return err
	}
	if inst.Status != model.StatusInProgress {
		if inst.Status == model.StatusCompleted {
			return util.ErrAlreadyCompleted
		}
		return util.ErrNotInProgress
	}

	payload, err := model.EncodeAnswers(stampAnswers(answers))
	if err != nil {
		return err
	}

	return s.DB.Model(&model.InterviewInstance{}).
		Where("id = ? AND status = ?", id, model.StatusInProgress).
		Updates(map[string]interface{}{
			"answers":          payload,
			"duration_seconds": elapsedSeconds,
		}).Error
}

// Submit finalizes the interview: scores the payload, freezes the answers and
// flips the status to completed. The guard is a hard business rule (scores
// must not be recomputed after release to reviewers), so a second submit gets
// ErrAlreadyCompleted, not a silent success. Concurrent submits are serialized
// by the check-and-set; losers observe RowsAffected == 0.
//
// timeSpentSeconds is caller-supplied, not server-measured; an accepted trust
// boundary.
func (s *InterviewService) Submit(ctx context.Context, id string, answers []model.AnswerRecord, timeSpentSeconds int) (*model.InterviewInstance, error) {
	inst, err := s.InterviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}
	if inst.Status == model.StatusCompleted {
		return nil, util.ErrAlreadyCompleted
	}

	stamped := stampAnswers(answers)
	enrichFromSnapshot(inst, stamped)
	score, maxScore, passed := s.Scorer.Score(inst.InterviewType, stamped)

	payload, err := model.EncodeAnswers(stamped)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows, err := s.InterviewRepo.MarkCompleted(id, map[string]interface{}{
		"status":           model.StatusCompleted,
		"completed_at":     now,
		"score":            score,
		"max_score":        maxScore,
		"passed":           passed,
		"answers":          payload,
		"duration_seconds": timeSpentSeconds,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, util.ErrAlreadyCompleted
	}

	return s.InterviewRepo.FindByID(id)
}

// Get returns the current state, resolving the question set lazily on first
// fetch when scheduling did not resolve it eagerly.
func (s *InterviewService) Get(ctx context.Context, id string) (*model.InterviewInstance, error) {
	inst, err := s.InterviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInterviewNotFound
		}
		return nil, err
	}

	if !inst.Resolved() {
		if err := s.resolveLazily(ctx, inst); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// resolveLazily attaches a question set to an instance created without one
// (the legacy direct/coding paths). A concurrent resolution is benign: both
// writers produce a valid snapshot and the last one sticks.
func (s *InterviewService) resolveLazily(ctx context.Context, inst *model.InterviewInstance) error {
	campaign, err := s.CampaignRepo.FindByID(inst.CampaignID)
	if err != nil {
		return err
	}

	round := s.roundFor(inst, campaign)
	set := s.Resolver.Resolve(ctx, round, campaign)

	questionsJSON, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}

	resolvedAt := set.ResolvedAt
	inst.Questions = string(questionsJSON)
	inst.QuestionSource = set.Source
	inst.ResolvedAt = &resolvedAt

	if err := s.DB.Model(&model.InterviewInstance{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"questions":       inst.Questions,
			"question_source": inst.QuestionSource,
			"resolved_at":     inst.ResolvedAt,
		}).Error; err != nil {
		return err
	}
	return nil
}

// roundFor recovers the round config behind a campaign interview, or builds a
// synthetic one for the direct/coding flavors that never had one.
func (s *InterviewService) roundFor(inst *model.InterviewInstance, campaign *model.Campaign) *model.CampaignRoundConfig {
	if inst.Kind == model.KindCampaign && inst.RoundConfigID != nil {
		round, err := s.CampaignRepo.FindRoundConfig(*inst.RoundConfigID)
		if err == nil {
			return round
		}
		logger.Log.Warn("round config missing for campaign interview, using synthetic round",
			zap.String("interviewId", inst.ID), zap.Error(err))
	}

	name := campaign.Role
	if name == "" {
		name = string(inst.InterviewType)
	}
	return &model.CampaignRoundConfig{
		CampaignID:    inst.CampaignID,
		RoundNumber:   inst.RoundNumber,
		Name:          name,
		InterviewType: inst.InterviewType,
		Difficulty:    "medium",
		QuestionCount: 5,
	}
}

// CreateDirect creates an ad hoc single-round interview outside the
// auto-scheduler. Same uniqueness guard, same lifecycle afterwards.
func (s *InterviewService) CreateDirect(ctx context.Context, candidateID, campaignID uint, interviewType model.InterviewType, scheduledAt time.Time) (*model.InterviewInstance, error) {
	candidate, err := s.CandidateRepo.FindByID(candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}

	var inst *model.InterviewInstance
	if interviewType == model.TypeCoding {
		inst = model.NewCodingInterview(candidateID, campaignID, scheduledAt)
	} else {
		inst = model.NewDirectInterview(candidateID, campaignID, interviewType, scheduledAt)
	}
	inst.ID = model.GenerateUUID()
	inst.AccessLink = BuildAccessLink(s.BaseURL, inst.ID, candidate.Email)

	if err := s.InterviewRepo.Create(inst); err != nil {
		if isDuplicateKey(err) {
			return nil, util.ErrAlreadyScheduled
		}
		return nil, err
	}
	return inst, nil
}

// stampAnswers normalizes incoming records: payload version, and a default
// kind for clients that omit the tag.
func stampAnswers(answers []model.AnswerRecord) []model.AnswerRecord {
	out := make([]model.AnswerRecord, len(answers))
	for i, a := range answers {
		a.Version = model.AnswerPayloadVersion
		if a.Kind == "" {
			if a.SelectedOption != "" || a.CorrectOption != "" {
				a.Kind = model.AnswerKindMCQ
			} else {
				a.Kind = model.AnswerKindFreeText
			}
		}
		out[i] = a
	}
	return out
}

// enrichFromSnapshot fills each MCQ record's correct option from the frozen
// question snapshot. The snapshot is authoritative; a client-supplied correct
// option is overwritten, never trusted, when the snapshot knows the answer.
func enrichFromSnapshot(inst *model.InterviewInstance, answers []model.AnswerRecord) {
	if inst.Questions == "" {
		return
	}
	var raw []struct {
		ID            string `json:"id"`
		CorrectOption string `json:"correctOption"`
	}
	if err := json.Unmarshal([]byte(inst.Questions), &raw); err != nil {
		return
	}
	correct := make(map[string]string, len(raw))
	for _, q := range raw {
		if q.CorrectOption != "" {
			correct[q.ID] = q.CorrectOption
		}
	}
	for i := range answers {
		if answers[i].Kind != model.AnswerKindMCQ {
			continue
		}
		if c, ok := correct[answers[i].QuestionID]; ok {
			answers[i].CorrectOption = c
		}
	}
}

// SanitizedQuestions strips grading fields (correct option, explanation) from
// the stored snapshot before it is shown to a candidate.
func SanitizedQuestions(inst *model.InterviewInstance) []map[string]interface{} {
	if inst.Questions == "" {
		return nil
	}
	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(inst.Questions), &raw); err != nil {
		return nil
	}
	for _, q := range raw {
		delete(q, "correctOption")
		delete(q, "explanation")
	}
	return raw
}
