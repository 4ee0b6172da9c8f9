package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportService 管理端 CSV 批量导入用户（AD 导出格式）。
// 原始文件归档到对象存储备查，逐行 upsert，失败的行记入报告不中断。
type ImportService struct {
	UserRepo *repository.UserRepository
	TeamRepo *repository.TeamRepository
	Storage  StorageProvider
}

func NewImportService(userRepo *repository.UserRepository, teamRepo *repository.TeamRepository, storage StorageProvider) *ImportService {
	return &ImportService{UserRepo: userRepo, TeamRepo: teamRepo, Storage: storage}
}

type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Archive  string   `json:"archive,omitempty"`
}

func (s *ImportService) ImportUsers(reader io.Reader, filename string) (*ImportReport, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	rows, err := parseImportCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, util.ErrEmptyImport
	}

	teams, err := s.TeamRepo.List()
	if err != nil {
		return nil, err
	}
	teamByName := make(map[string]uint, len(teams))
	for _, t := range teams {
		teamByName[strings.ToLower(t.Name)] = t.ID
	}

	report := &ImportReport{}
	for i, row := range rows {
		// 表头占第 1 行
		rowNum := i + 2

		email := strings.ToLower(strings.TrimSpace(firstNonEmpty(row["userprincipalname"], row["email"])))
		name := strings.TrimSpace(firstNonEmpty(row["displayname"], row["name"]))
		department := strings.TrimSpace(row["department"])
		jobTitle := strings.TrimSpace(firstNonEmpty(row["jobtitle"], row["job title"]))

		if email == "" || name == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: missing email or name — skipped", rowNum))
			report.Skipped++
			continue
		}

		teamID, ok := teamByName[strings.ToLower(department)]
		if !ok {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: unknown department %q — skipped", rowNum, department))
			report.Skipped++
			continue
		}

		if err := s.upsertUser(email, name, jobTitle, teamID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			report.Skipped++
			continue
		}
		report.Imported++
	}

	if s.Storage != nil {
		archive := fmt.Sprintf("imports/%s_%s", time.Now().Format("20060102T150405"), filename)
		url, err := s.Storage.Upload(context.Background(), archive, bytes.NewReader(raw), int64(len(raw)), "text/csv")
		if err != nil {
			logger.Log.Warn("import archive upload failed", zap.Error(err))
		} else {
			report.Archive = url
		}
	}

	return report, nil
}

func (s *ImportService) upsertUser(email, name, jobTitle string, teamID uint) error {
	existing, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		existing.Name = name
		existing.JobTitle = jobTitle
		existing.TeamID = teamID
		return s.UserRepo.Update(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.UserRepo.Create(&model.User{
		ExternalID: strings.ReplaceAll(email, "@", "."),
		Name:       name,
		Email:      email,
		Role:       model.Employee,
		TeamID:     teamID,
		JobTitle:   jobTitle,
	})
}

// parseImportCSV 表头行小写后作为键，列数不齐的行按空值补齐
func parseImportCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
