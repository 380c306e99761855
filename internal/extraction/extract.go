// Package extraction converts raw LinkedIn profile exports into the
// normalized Profile structure the rest of the system consumes.
package extraction

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/expert-finder/internal/types"
)

// timeNow is stubbed in tests that pin the current year.
var timeNow = time.Now

// rawEnvelope is the on-disk shape of a fetched profile: an identifier plus
// the provider payload.
type rawEnvelope struct {
	URNID          string     `json:"urn_id"`
	FetchTimestamp string     `json:"fetch_timestamp"`
	ProfileData    rawProfile `json:"profile_data"`
}

type rawProfile struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Headline        string `json:"headline"`
	Summary         string `json:"summary"`
	PublicID        string `json:"public_id"`
	LocationName    string `json:"locationName"`
	GeoLocationName string `json:"geoLocationName"`
	GeoCountryName  string `json:"geoCountryName"`
	IndustryName    string `json:"industryName"`
	Student         bool   `json:"student"`

	Location struct {
		BasicLocation struct {
			CountryCode string `json:"countryCode"`
		} `json:"basicLocation"`
	} `json:"location"`

	Experience []rawExperience `json:"experience"`
	Education  []rawEducation  `json:"education"`

	Skills []struct {
		Name string `json:"name"`
	} `json:"skills"`

	Languages []struct {
		Name        string `json:"name"`
		Proficiency string `json:"proficiency"`
	} `json:"languages"`

	Publications []struct {
		Name        string  `json:"name"`
		Publisher   string  `json:"publisher"`
		Description string  `json:"description"`
		URL         string  `json:"url"`
		Date        rawDate `json:"date"`
	} `json:"publications"`

	Projects []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"projects"`

	Honors []struct {
		Title       string  `json:"title"`
		Issuer      string  `json:"issuer"`
		Description string  `json:"description"`
		Date        rawDate `json:"date"`
	} `json:"honors"`
}

type rawDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
}

type rawTimePeriod struct {
	StartDate rawDate  `json:"startDate"`
	EndDate   *rawDate `json:"endDate"`
}

type rawExperience struct {
	Title        string        `json:"title"`
	CompanyName  string        `json:"companyName"`
	CompanyURN   string        `json:"companyUrn"`
	LocationName string        `json:"locationName"`
	Description  string        `json:"description"`
	TimePeriod   rawTimePeriod `json:"timePeriod"`
	Company      struct {
		EmployeeCountRange struct {
			Start *int `json:"start"`
		} `json:"employeeCountRange"`
		Industries []string `json:"industries"`
	} `json:"company"`
}

type rawEducation struct {
	SchoolName   string        `json:"schoolName"`
	DegreeName   string        `json:"degreeName"`
	FieldOfStudy string        `json:"fieldOfStudy"`
	Grade        string        `json:"grade"`
	TimePeriod   rawTimePeriod `json:"timePeriod"`
}

// Extract parses a raw profile export and returns the normalized profile
// with all derived fields populated.
func Extract(data []byte) (*types.Profile, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse raw profile JSON: %w", err)
	}
	if raw.URNID == "" {
		return nil, fmt.Errorf("raw profile is missing urn_id")
	}

	src := raw.ProfileData
	profile := &types.Profile{
		URNID:           raw.URNID,
		FetchTimestamp:  raw.FetchTimestamp,
		FirstName:       src.FirstName,
		LastName:        src.LastName,
		FullName:        strings.TrimSpace(src.FirstName + " " + src.LastName),
		Headline:        src.Headline,
		Summary:         src.Summary,
		PublicID:        src.PublicID,
		LocationName:    src.LocationName,
		GeoLocationName: src.GeoLocationName,
		Country:         src.GeoCountryName,
		CountryCode:     src.Location.BasicLocation.CountryCode,
		Industry:        src.IndustryName,
		Student:         src.Student,
	}

	extractExperiences(profile, src.Experience)
	extractEducations(profile, src.Education)

	for _, skill := range src.Skills {
		if skill.Name != "" {
			profile.Skills = append(profile.Skills, skill.Name)
		}
	}
	if n := len(profile.Skills); n > 5 {
		profile.TopSkills = profile.Skills[:5]
	} else {
		profile.TopSkills = profile.Skills
	}

	for _, lang := range src.Languages {
		profile.Languages = append(profile.Languages, types.Language{
			Name:        lang.Name,
			Proficiency: lang.Proficiency,
		})
	}
	for _, pub := range src.Publications {
		profile.Publications = append(profile.Publications, types.Publication{
			Name:        pub.Name,
			Publisher:   pub.Publisher,
			Description: pub.Description,
			URL:         pub.URL,
			Year:        pub.Date.Year,
		})
	}
	for _, proj := range src.Projects {
		profile.Projects = append(profile.Projects, types.Project{
			Title:       proj.Title,
			Description: proj.Description,
		})
	}
	for _, honor := range src.Honors {
		profile.Honors = append(profile.Honors, types.Honor{
			Title:       honor.Title,
			Issuer:      honor.Issuer,
			Description: honor.Description,
			Year:        honor.Date.Year,
			Month:       honor.Date.Month,
		})
	}

	profile.EducationLevel = classifyEducationLevel(profile.Educations)
	profile.CareerLevel = classifyCareerLevel(profile.CurrentTitle)

	return profile, nil
}

// ExtractFile reads and extracts a single raw profile file.
func ExtractFile(path string) (*types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	return Extract(data)
}

// ExtractDir extracts every .json file in dir. Files that fail to parse are
// logged and skipped; one bad export must not abort a processing run.
func ExtractDir(dir string) ([]*types.Profile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list profile files in %s: %w", dir, err)
	}

	profiles := make([]*types.Profile, 0, len(paths))
	for _, path := range paths {
		profile, err := ExtractFile(path)
		if err != nil {
			log.Printf("extraction: skipping %s: %v", path, err)
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func extractExperiences(profile *types.Profile, raws []rawExperience) {
	if len(raws) == 0 {
		return
	}

	// The provider lists positions most recent first.
	current := raws[0]
	profile.CurrentTitle = current.Title
	profile.CurrentCompany = current.CompanyName
	profile.CurrentLocation = current.LocationName
	if current.TimePeriod.StartDate.Year != nil {
		year := *current.TimePeriod.StartDate.Year
		profile.CurrentStartYear = &year
	}

	currentYear := timeNow().Year()
	totalYears := 0.0
	for _, raw := range raws {
		exp := types.Experience{
			Title:             raw.Title,
			Company:           raw.CompanyName,
			CompanyURN:        raw.CompanyURN,
			Location:          raw.LocationName,
			Description:       raw.Description,
			StartMonth:        raw.TimePeriod.StartDate.Month,
			StartYear:         raw.TimePeriod.StartDate.Year,
			IsCurrent:         raw.TimePeriod.EndDate == nil,
			CompanySize:       raw.Company.EmployeeCountRange.Start,
			CompanyIndustries: raw.Company.Industries,
		}
		if raw.TimePeriod.EndDate != nil {
			exp.EndMonth = raw.TimePeriod.EndDate.Month
			exp.EndYear = raw.TimePeriod.EndDate.Year
		}
		profile.Experiences = append(profile.Experiences, exp)

		if exp.StartYear != nil {
			end := currentYear
			if exp.EndYear != nil {
				end = *exp.EndYear
			}
			totalYears += float64(end - *exp.StartYear)
		}
	}

	profile.ExperienceCount = len(profile.Experiences)
	profile.TotalYearsExperience = &totalYears
}

func extractEducations(profile *types.Profile, raws []rawEducation) {
	if len(raws) == 0 {
		return
	}

	latest := raws[0]
	profile.LatestSchool = latest.SchoolName
	profile.LatestDegree = latest.DegreeName
	profile.LatestField = latest.FieldOfStudy

	for _, raw := range raws {
		edu := types.Education{
			School:       raw.SchoolName,
			Degree:       raw.DegreeName,
			FieldOfStudy: raw.FieldOfStudy,
			Grade:        raw.Grade,
			StartYear:    raw.TimePeriod.StartDate.Year,
			IsCurrent:    raw.TimePeriod.EndDate == nil,
		}
		if raw.TimePeriod.EndDate != nil {
			edu.EndYear = raw.TimePeriod.EndDate.Year
		}
		profile.Educations = append(profile.Educations, edu)
	}
	profile.EducationCount = len(profile.Educations)
}
