package service

import (
	"context"
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"github.com/sbrlabs/lookup-dashboard/api/internal/dto"
	"github.com/sbrlabs/lookup-dashboard/api/internal/entity"
	"github.com/sbrlabs/lookup-dashboard/api/internal/repository"
	"github.com/sbrlabs/lookup-dashboard/api/internal/service/locate"
)

// NumbersService builds per-phone activity profiles.
type NumbersService struct {
	jobs   repository.JobsRepository
	region string
}

// NewNumbersService creates a new instance of NumbersService. region is the
// default phonenumbers region used for numbers stored without a country code.
func NewNumbersService(jobs repository.JobsRepository, region string) *NumbersService {
	return &NumbersService{jobs: jobs, region: region}
}

// Profiles returns the busiest numbers for a user (or all users), ordered by
// total descending and capped by the repository. Each row is annotated with
// the canonical E.164 form and region when the stored phone parses.
func (s *NumbersService) Profiles(ctx context.Context, username string) ([]dto.NumberProfile, error) {
	profiles, err := s.jobs.NumberProfiles(ctx, username)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []dto.NumberProfile{}
	}

	for i := range profiles {
		s.annotate(&profiles[i])
	}
	return profiles, nil
}

// annotate fills in display metadata for valid numbers. Numbers that fail to
// parse stay untouched; the verbatim phone remains the lookup key either way.
func (s *NumbersService) annotate(profile *dto.NumberProfile) {
	number, err := phonenumbers.Parse(profile.Phone, s.region)
	if err != nil {
		return
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return
	}
	profile.E164 = phonenumbers.Format(number, phonenumbers.E164)
	profile.Region = phonenumbers.GetRegionCodeForNumber(number)
}

// PhoneHistory returns the complete, uncapped job list for one number.
func (s *NumbersService) PhoneHistory(ctx context.Context, phone string) ([]entity.Job, error) {
	if phone == "" {
		return nil, fmt.Errorf("phone must not be empty")
	}
	jobs, err := s.jobs.JobsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []entity.Job{}
	}
	return jobs, nil
}

// PhoneProfile builds the drill-down view for one number: the full history
// plus outcome counts, the chart breakdown and every coordinate the tolerant
// extractor can find. Payloads without a usable location are skipped quietly.
func (s *NumbersService) PhoneProfile(ctx context.Context, phone string) (*dto.PhoneProfile, error) {
	jobs, err := s.PhoneHistory(ctx, phone)
	if err != nil {
		return nil, err
	}

	profile := &dto.PhoneProfile{
		Phone:     phone,
		Jobs:      jobs,
		Locations: []dto.Location{},
	}
	profile.Summary.Total = len(jobs)

	for i := range jobs {
		job := &jobs[i]
		switch status(job) {
		case "success", "completed":
			profile.Summary.Success++
		case "failed":
			profile.Summary.Failed++
		default:
			profile.Summary.Other++
		}

		if job.Result == nil {
			continue
		}
		point, ok := locate.Extract(*job.Result)
		if !ok {
			continue
		}
		id := job.ID
		profile.Locations = append(profile.Locations, dto.Location{
			Lat:       point.Lat,
			Lng:       point.Lng,
			Phone:     phone,
			CreatedAt: job.CreatedAt,
			JobID:     &id,
		})
	}

	profile.Breakdown = buildBreakdown(profile.Summary)
	return profile, nil
}

func status(job *entity.Job) string {
	if job.Status == nil {
		return ""
	}
	return *job.Status
}

// buildBreakdown drops empty buckets so the chart only shows slices that
// exist.
func buildBreakdown(summary dto.PhoneSummary) []dto.ChartSlice {
	slices := make([]dto.ChartSlice, 0, 3)
	for _, slice := range []dto.ChartSlice{
		{Name: "Success", Value: summary.Success},
		{Name: "Failed", Value: summary.Failed},
		{Name: "Other", Value: summary.Other},
	} {
		if slice.Value > 0 {
			slices = append(slices, slice)
		}
	}
	return slices
}
