package validation

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/solar-catalog-api/internal/apperr"
	"github.com/solar-catalog-api/internal/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a list of field errors. It matches apperr.ErrInvalidInput with errors.Is.
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Field + ": " + ve.Message
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets callers test for apperr.ErrInvalidInput
func (e Errors) Unwrap() error {
	return apperr.ErrInvalidInput
}

var (
	titleRules    = []ozzo.Rule{ozzo.Required, ozzo.Length(1, 200)}
	excerptRules  = []ozzo.Rule{ozzo.Length(0, 500)}
	contentRules  = []ozzo.Rule{ozzo.Required}
	categoryRules = []ozzo.Rule{ozzo.Required, ozzo.In(anySlice(models.ValidArticleCategories)...).
			Error("must be one of: solar-racing, technical-guide, news, case-study, tutorial")}
	tagRules = []ozzo.Rule{ozzo.Each(ozzo.Required, ozzo.Length(1, 50))}

	productCategoryRules = []ozzo.Rule{ozzo.Required, ozzo.In(anySlice(models.ValidProductCategories)...).
				Error("must be one of: control-unit, solar-panel, accessory")}
	availabilityRules = []ozzo.Rule{ozzo.Required, ozzo.In(anySlice(models.ValidAvailabilities)...).
				Error("must be one of: available, pre-order, coming-soon, discontinued")}
	featureRules = []ozzo.Rule{ozzo.Each(ozzo.By(func(v interface{}) error {
		if f, ok := v.(models.Feature); ok && strings.TrimSpace(f.Title) == "" {
			return errors.New("feature title is required")
		}
		return nil
	}))}
	specificationRules = []ozzo.Rule{ozzo.Each(ozzo.By(func(v interface{}) error {
		if s, ok := v.(models.Specification); ok && strings.TrimSpace(s.Label) == "" {
			return errors.New("specification label is required")
		}
		return nil
	}))}
)

// ValidateArticleInput validates a new article
func ValidateArticleInput(in *models.ArticleInput) error {
	err := ozzo.ValidateStruct(in,
		ozzo.Field(&in.Title, titleRules...),
		ozzo.Field(&in.Excerpt, excerptRules...),
		ozzo.Field(&in.Content, contentRules...),
		ozzo.Field(&in.Category, categoryRules...),
		ozzo.Field(&in.Tags, tagRules...),
		ozzo.Field(&in.Author, ozzo.By(authorRule)),
	)
	return convert(err)
}

// ValidateArticleUpdate validates the fields present in a partial update
func ValidateArticleUpdate(u *models.ArticleUpdate) error {
	if u.IsEmpty() {
		return Errors{{Field: "body", Message: "no fields to update"}}
	}

	errs := ozzo.Errors{}
	if u.Title != nil {
		errs["title"] = ozzo.Validate(*u.Title, titleRules...)
	}
	if u.Excerpt != nil {
		errs["excerpt"] = ozzo.Validate(*u.Excerpt, excerptRules...)
	}
	if u.Content != nil {
		errs["content"] = ozzo.Validate(*u.Content, contentRules...)
	}
	if u.Category != nil {
		errs["category"] = ozzo.Validate(*u.Category, categoryRules...)
	}
	if u.Tags != nil {
		errs["tags"] = ozzo.Validate(*u.Tags, tagRules...)
	}
	if u.Author != nil {
		errs["author"] = authorRule(*u.Author)
	}
	return convert(errs.Filter())
}

// ValidateProduct validates a full product document
func ValidateProduct(p *models.Product) error {
	err := ozzo.ValidateStruct(p,
		ozzo.Field(&p.ID, ozzo.Required, ozzo.Length(1, 100), ozzo.Match(slugRegex).Error("must be a lowercase slug")),
		ozzo.Field(&p.Name, ozzo.Required, ozzo.Length(1, 200)),
		ozzo.Field(&p.Category, productCategoryRules...),
		ozzo.Field(&p.Availability, availabilityRules...),
		ozzo.Field(&p.Features, featureRules...),
		ozzo.Field(&p.Specifications, specificationRules...),
	)
	return convert(err)
}

// ValidateProductUpdate validates the fields present in a partial product update
func ValidateProductUpdate(u *models.ProductUpdate) error {
	if u.IsEmpty() {
		return Errors{{Field: "body", Message: "no fields to update"}}
	}

	errs := ozzo.Errors{}
	if u.Name != nil {
		errs["name"] = ozzo.Validate(*u.Name, ozzo.Required, ozzo.Length(1, 200))
	}
	if u.Category != nil {
		errs["category"] = ozzo.Validate(*u.Category, productCategoryRules...)
	}
	if u.Availability != nil {
		errs["availability"] = ozzo.Validate(*u.Availability, availabilityRules...)
	}
	if u.Features != nil {
		errs["features"] = ozzo.Validate(*u.Features, featureRules...)
	}
	if u.Specifications != nil {
		errs["specifications"] = ozzo.Validate(*u.Specifications, specificationRules...)
	}
	return convert(errs.Filter())
}

// ValidateContact validates a contact-form submission
func ValidateContact(r *models.ContactRequest) error {
	err := ozzo.ValidateStruct(r,
		ozzo.Field(&r.Name, ozzo.Required, ozzo.Length(1, 100)),
		ozzo.Field(&r.Email, ozzo.Required, is.EmailFormat),
		ozzo.Field(&r.Company, ozzo.Length(0, 200)),
		ozzo.Field(&r.Subject, ozzo.Length(0, 200)),
		ozzo.Field(&r.Message, ozzo.Required, ozzo.Length(10, 5000)),
	)
	return convert(err)
}

// ValidCategoryFilter reports whether category is empty, "all" or in valid
func ValidCategoryFilter(category string, valid map[string]bool) bool {
	return category == "" || category == "all" || valid[category]
}

func authorRule(v interface{}) error {
	a, ok := v.(models.Author)
	if !ok {
		return nil
	}
	return ozzo.ValidateStruct(&a,
		ozzo.Field(&a.Name, ozzo.Required),
		ozzo.Field(&a.Email, is.EmailFormat),
	)
}

// convert flattens ozzo errors into a sorted Errors list
func convert(err error) error {
	if err == nil {
		return nil
	}
	var verrs ozzo.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	var out Errors
	flatten("", verrs, &out)
	if len(out) == 0 {
		return nil
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func flatten(prefix string, errs ozzo.Errors, out *Errors) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		field := key
		if prefix != "" {
			field = prefix + "." + key
		}
		var nested ozzo.Errors
		if errors.As(err, &nested) {
			flatten(field, nested, out)
			continue
		}
		*out = append(*out, ValidationError{Field: field, Message: err.Error()})
	}
}

func anySlice(set map[string]bool) []interface{} {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
