package zoominfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
)

// Filters is an open set of search filters keyed by API field name.
// Values must be JSON serializable.
type Filters map[string]any

// ContactSearch holds the named fields accepted by the contact search endpoint.
// Empty strings, nil slices and nil pointers are omitted from the request.
type ContactSearch struct {
	// Person identity.
	PersonID      string `json:"personId,omitempty"`
	EmailAddress  string `json:"emailAddress,omitempty"`
	HashedEmail   string `json:"hashedEmail,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	MiddleInitial string `json:"middleInitial,omitempty"`
	LastName      string `json:"lastName,omitempty"`

	// Role at the current company.
	JobTitle                string `json:"jobTitle,omitempty"`
	ExcludeJobTitle         string `json:"excludeJobTitle,omitempty"`
	ManagementLevel         string `json:"managementLevel,omitempty"`
	ExcludeManagementLevel  string `json:"excludeManagementLevel,omitempty"`
	BoardMember             string `json:"boardMember,omitempty"`
	ExcludePartialProfiles  *bool  `json:"excludePartialProfiles,omitempty"`
	ExecutivesOnly          *bool  `json:"executivesOnly,omitempty"`
	RequiredFields          string `json:"requiredFields,omitempty"`
	ContactAccuracyScoreMin string `json:"contactAccuracyScoreMin,omitempty"`
	ContactAccuracyScoreMax string `json:"contactAccuracyScoreMax,omitempty"`
	JobFunction             string `json:"jobFunction,omitempty"`

	// History, education and contact details.
	LastUpdatedInMonths  *int     `json:"lastUpdatedInMonths,omitempty"`
	HasBeenNotified      string   `json:"hasBeenNotified,omitempty"`
	CompanyPastOrPresent string   `json:"companyPastOrPresent,omitempty"`
	School               string   `json:"school,omitempty"`
	Degree               string   `json:"degree,omitempty"`
	LocationCompanyID    []string `json:"locationCompanyId,omitempty"`
	LastUpdatedDateAfter string   `json:"lastUpdatedDateAfter,omitempty"`
	ValidDateAfter       string   `json:"validDateAfter,omitempty"`
	Phone                []string `json:"phone,omitempty"`
	PositionStartDateMin string   `json:"positionStartDateMin,omitempty"`
	PositionStartDateMax string   `json:"positionStartDateMax,omitempty"`
	SupplementalEmail    []string `json:"supplementalEmail,omitempty"`
	WebReferences        []string `json:"webReferences,omitempty"`
	BuyingGroup          []string `json:"buyingGroup,omitempty"`
	TechSkills           []string `json:"techSkills,omitempty"`
	YearsOfExperience    string   `json:"yearsOfExperience,omitempty"`
	Department           string   `json:"department,omitempty"`
	ExactJobTitle        string   `json:"exactJobTitle,omitempty"`

	CompanyCriteria
	Engagement
	Paging
}

// CompanySearch holds the named fields accepted by the company search endpoint.
type CompanySearch struct {
	// Department budgets, in thousands.
	MarketingDepartmentBudgetMin *int `json:"marketingDepartmentBudgetMin,omitempty"`
	MarketingDepartmentBudgetMax *int `json:"marketingDepartmentBudgetMax,omitempty"`
	FinanceDepartmentBudgetMin   *int `json:"financeDepartmentBudgetMin,omitempty"`
	FinanceDepartmentBudgetMax   *int `json:"financeDepartmentBudgetMax,omitempty"`
	ITDepartmentBudgetMin        *int `json:"itDepartmentBudgetMin,omitempty"`
	ITDepartmentBudgetMax        *int `json:"itDepartmentBudgetMax,omitempty"`
	HRDepartmentBudgetMin        *int `json:"hrDepartmentBudgetMin,omitempty"`
	HRDepartmentBudgetMax        *int `json:"hrDepartmentBudgetMax,omitempty"`

	Certified               *int  `json:"certified,omitempty"`
	ExcludeDefunctCompanies *bool `json:"excludeDefunctCompanies,omitempty"`

	CompanyCriteria
	BusinessModel []string `json:"businessModel,omitempty"`
	Engagement
	Paging
}

// CompanyCriteria are the firmographic filters shared by contact and company search.
type CompanyCriteria struct {
	CompanyTicker                        []string `json:"companyTicker,omitempty"`
	CompanyDescription                   string   `json:"companyDescription,omitempty"`
	CompanyType                          string   `json:"companyType,omitempty"`
	Address                              string   `json:"address,omitempty"`
	Street                               string   `json:"street,omitempty"`
	ZipCode                              string   `json:"zipCode,omitempty"`
	State                                string   `json:"state,omitempty"`
	Country                              string   `json:"country,omitempty"`
	Continent                            string   `json:"continent,omitempty"`
	CompanyID                            string   `json:"companyId,omitempty"`
	CompanyName                          string   `json:"companyName,omitempty"`
	CompanyWebsite                       string   `json:"companyWebsite,omitempty"`
	ParentID                             string   `json:"parentId,omitempty"`
	UltimateParentID                     string   `json:"ultimateParentId,omitempty"`
	ZipCodeRadiusMiles                   string   `json:"zipCodeRadiusMiles,omitempty"`
	HashTagString                        string   `json:"hashTagString,omitempty"`
	TechAttributeTagList                 string   `json:"techAttributeTagList,omitempty"`
	SubUnitTypes                         string   `json:"subUnitTypes,omitempty"`
	PrimaryIndustriesOnly                *bool    `json:"primaryIndustriesOnly,omitempty"`
	IndustryCodes                        string   `json:"industryCodes,omitempty"`
	IndustryKeywords                     string   `json:"industryKeywords,omitempty"`
	SICCodes                             string   `json:"sicCodes,omitempty"`
	NAICSCodes                           string   `json:"naicsCodes,omitempty"`
	Revenue                              string   `json:"revenue,omitempty"`
	RevenueMin                           *int     `json:"revenueMin,omitempty"`
	RevenueMax                           *int     `json:"revenueMax,omitempty"`
	EmployeeRangeMin                     string   `json:"employeeRangeMin,omitempty"`
	EmployeeRangeMax                     string   `json:"employeeRangeMax,omitempty"`
	EmployeeCount                        string   `json:"employeeCount,omitempty"`
	CompanyRanking                       string   `json:"companyRanking,omitempty"`
	MetroRegion                          string   `json:"metroRegion,omitempty"`
	LocationSearchType                   string   `json:"locationSearchType,omitempty"`
	FundingAmountMin                     *int     `json:"fundingAmountMin,omitempty"`
	FundingAmountMax                     *int     `json:"fundingAmountMax,omitempty"`
	FundingStartDate                     string   `json:"fundingStartDate,omitempty"`
	FundingEndDate                       string   `json:"fundingEndDate,omitempty"`
	ZoomInfoContactsMin                  string   `json:"zoominfoContactsMin,omitempty"`
	ZoomInfoContactsMax                  string   `json:"zoominfoContactsMax,omitempty"`
	ExcludedRegions                      string   `json:"excludedRegions,omitempty"`
	CompanyStructureIncludedSubUnitTypes string   `json:"companyStructureIncludedSubUnitTypes,omitempty"`
	OneYearEmployeeGrowthRateMin         string   `json:"oneYearEmployeeGrowthRateMin,omitempty"`
	OneYearEmployeeGrowthRateMax         string   `json:"oneYearEmployeeGrowthRateMax,omitempty"`
	TwoYearEmployeeGrowthRateMin         string   `json:"twoYearEmployeeGrowthRateMin,omitempty"`
	TwoYearEmployeeGrowthRateMax         string   `json:"twoYearEmployeeGrowthRateMax,omitempty"`
}

// Engagement filters on recorded engagement activity.
type Engagement struct {
	EngagementStartDate string   `json:"engagementStartDate,omitempty"`
	EngagementEndDate   string   `json:"engagementEndDate,omitempty"`
	EngagementType      []string `json:"engagementType,omitempty"`
}

// Paging is passed through to the API unchanged; the client never loops over pages.
type Paging struct {
	RPP       *int   `json:"rpp,omitempty"`
	Page      *int   `json:"page,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// Bool returns a pointer to v, for optional boolean fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional numeric fields.
func Int(v int) *int { return &v }

// SearchContacts searches contacts matching the named fields merged with extra.
// Keys in extra override named fields with the same API name.
func (c *Client) SearchContacts(ctx context.Context, search ContactSearch, extra Filters) (SearchResult, error) {
	return c.search(ctx, "/search/contact", search, extra)
}

// SearchCompanies searches companies matching the named fields merged with extra.
// Keys in extra override named fields with the same API name.
func (c *Client) SearchCompanies(ctx context.Context, search CompanySearch, extra Filters) (SearchResult, error) {
	return c.search(ctx, "/search/company", search, extra)
}

func (c *Client) search(ctx context.Context, path string, named any, extra Filters) (SearchResult, error) {
	filters, err := mergeFilters(named, extra)
	if err != nil {
		return nil, err
	}

	token, err := c.bearer(ctx)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, filters)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var result SearchResult
	if _, err := c.doJSON(req, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// mergeFilters flattens the named fields into their API names and lays extra on top.
func mergeFilters(named any, extra Filters) (Filters, error) {
	data, err := json.Marshal(named)
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	filters := Filters{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&filters); err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	maps.Copy(filters, extra)

	return filters, nil
}
