package recommend

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/campuslab/fyphub-backend/internal/catalog"
)

// Feature weights for content similarity. They sum to 1.0.
var contentFeatureWeights = struct {
	category     float64
	technologies float64
	difficulty   float64
	department   float64
	keywords     float64
}{
	category:     0.25,
	technologies: 0.30,
	difficulty:   0.15,
	department:   0.20,
	keywords:     0.10,
}

// vocabularyLimit caps the keyword vector space at the most frequent terms.
const vocabularyLimit = 100

var nonWordPattern = regexp.MustCompile(`\W+`)

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "for": true,
	"with": true, "from": true, "this": true, "that": true,
}

// projectFeatures is the normalized view of a project used for scoring.
type projectFeatures struct {
	category     string
	technologies string // lower-cased, space-joined
	difficulty   string
	department   string
	keywords     string // lower-cased keywords, falling back to title
	supervisor   string
}

// ContentFilter scores projects by feature overlap with a user's history.
type ContentFilter struct{}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{}
}

func extractFeatures(project *catalog.Project) projectFeatures {
	keywords := project.Keywords
	if keywords == "" {
		keywords = project.Title
	}

	difficulty := project.Difficulty
	if difficulty == "" {
		difficulty = catalog.DifficultyMedium
	}

	return projectFeatures{
		category:     project.Category,
		technologies: strings.ToLower(strings.Join(project.Technologies, " ")),
		difficulty:   difficulty,
		department:   project.Department,
		keywords:     strings.ToLower(keywords),
		supervisor:   project.Supervisor,
	}
}

// tokenize splits text on non-word boundaries and drops short tokens.
func tokenize(text string) []string {
	var tokens []string
	for _, token := range nonWordPattern.Split(strings.ToLower(text), -1) {
		if len(token) > 2 {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// BuildVocabulary derives the keyword basis space from the whole catalog:
// tokens longer than 2 characters, not stop words, occurring more than once,
// capped at the most frequent terms (ties broken alphabetically so the
// vector space is deterministic).
func (f *ContentFilter) BuildVocabulary(projects []*catalog.Project) []string {
	counts := make(map[string]int)

	for _, project := range projects {
		features := extractFeatures(project)
		text := features.category + " " + features.technologies + " " + features.keywords + " " + features.supervisor
		for _, token := range tokenize(text) {
			if !stopWords[token] {
				counts[token]++
			}
		}
	}

	terms := make([]string, 0, len(counts))
	for term, count := range counts {
		if count > 1 {
			terms = append(terms, term)
		}
	}

	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > vocabularyLimit {
		terms = terms[:vocabularyLimit]
	}

	return terms
}

// featureVector maps text onto a binary presence vector over the vocabulary.
// A term is present when it overlaps any token as a substring either way.
func featureVector(text string, vocabulary []string) []float64 {
	words := tokenize(text)
	vector := make([]float64, len(vocabulary))

	for i, term := range vocabulary {
		for _, word := range words {
			if strings.Contains(word, term) || strings.Contains(term, word) {
				vector[i] = 1
				break
			}
		}
	}

	return vector
}

// jaccardSimilarity over two token sets.
func jaccardSimilarity(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	union := make(map[string]bool, len(a)+len(b))
	for _, item := range a {
		setA[item] = true
		union[item] = true
	}

	intersection := 0
	for _, item := range b {
		if setA[item] {
			intersection++
			delete(setA, item) // count each common member once
		}
		union[item] = true
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

var difficultyLevels = map[string]float64{
	catalog.DifficultyEasy:   1,
	catalog.DifficultyMedium: 2,
	catalog.DifficultyHard:   3,
}

func difficultyLevel(difficulty string) float64 {
	if level, ok := difficultyLevels[difficulty]; ok {
		return level
	}
	return difficultyLevels[catalog.DifficultyMedium]
}

// Similarity computes the weighted feature similarity of two projects,
// clamped to [0,1]. Symmetric by construction.
func (f *ContentFilter) Similarity(a, b *catalog.Project, vocabulary []string) float64 {
	featuresA := extractFeatures(a)
	featuresB := extractFeatures(b)

	var total float64

	if featuresA.category == featuresB.category {
		total += contentFeatureWeights.category
	}

	techA := strings.Fields(featuresA.technologies)
	techB := strings.Fields(featuresB.technologies)
	total += jaccardSimilarity(techA, techB) * contentFeatureWeights.technologies

	if featuresA.department == featuresB.department {
		total += contentFeatureWeights.department
	}

	diffA := difficultyLevel(featuresA.difficulty)
	diffB := difficultyLevel(featuresB.difficulty)
	total += (1 - math.Abs(diffA-diffB)/2) * contentFeatureWeights.difficulty

	vectorA := featureVector(featuresA.keywords, vocabulary)
	vectorB := featureVector(featuresB.keywords, vocabulary)
	total += cosineSimilarity(vectorA, vectorB) * contentFeatureWeights.keywords

	return math.Min(total, 1)
}

// BuildProfile aggregates preference counts from interactions strong enough
// to signal intent: a rating of 3+ or an application or bookmark. Returns
// nil when nothing qualifies (cold start).
func (f *ContentFilter) BuildProfile(interactions []*Interaction, projects []*catalog.Project) *UserProfile {
	byID := make(map[int64]*catalog.Project, len(projects))
	for _, project := range projects {
		byID[project.ID] = project
	}

	profile := &UserProfile{
		PreferredCategories:  make(map[string]int),
		PreferredTechs:       make(map[string]int),
		PreferredDepartments: make(map[string]int),
		Keywords:             make(map[string]int),
	}

	qualifying := 0
	for _, interaction := range interactions {
		if interaction.Rating < 3 && !interaction.Applied && !interaction.Bookmarked {
			continue
		}

		project, ok := byID[interaction.ProjectID]
		if !ok {
			continue
		}
		qualifying++

		features := extractFeatures(project)

		profile.PreferredCategories[features.category]++
		profile.PreferredDepartments[features.department]++

		for _, tech := range strings.Fields(features.technologies) {
			if len(tech) > 2 {
				profile.PreferredTechs[tech]++
			}
		}

		for _, keyword := range strings.Fields(features.keywords) {
			if len(keyword) > 2 {
				profile.Keywords[keyword]++
			}
		}
	}

	if qualifying == 0 {
		return nil
	}

	return profile
}

// Recommend scores non-interacted projects against the user profile. A nil
// profile falls back to the most viewed projects with fixed score and low
// confidence.
func (f *ContentFilter) Recommend(profile *UserProfile, projects []*catalog.Project, interacted map[int64]bool, n int) []*Recommendation {
	if profile == nil {
		popular := make([]*catalog.Project, 0, len(projects))
		for _, project := range projects {
			if !interacted[project.ID] {
				popular = append(popular, project)
			}
		}
		sort.SliceStable(popular, func(i, j int) bool {
			return popular[i].Views > popular[j].Views
		})

		if len(popular) > n {
			popular = popular[:n]
		}

		recommendations := make([]*Recommendation, 0, len(popular))
		for _, project := range popular {
			recommendations = append(recommendations, &Recommendation{
				Project:    project,
				Score:      0.5,
				Confidence: 0.3,
			})
		}
		return recommendations
	}

	maxCategory := safeMax(profile.PreferredCategories)
	maxTech := safeMax(profile.PreferredTechs)
	maxDepartment := safeMax(profile.PreferredDepartments)
	maxKeyword := safeMax(profile.Keywords)

	confidence := math.Min(float64(len(profile.PreferredCategories))/5, 1)

	var recommendations []*Recommendation

	for _, project := range projects {
		if interacted[project.ID] {
			continue
		}

		features := extractFeatures(project)
		var score float64

		score += float64(profile.PreferredCategories[features.category]) / maxCategory * 0.3

		techs := strings.Fields(features.technologies)
		var techSum float64
		for _, tech := range techs {
			techSum += float64(profile.PreferredTechs[tech])
		}
		techScore := techSum / math.Max(1, float64(len(techs)))
		score += techScore / maxTech * 0.4

		score += float64(profile.PreferredDepartments[features.department]) / maxDepartment * 0.2

		keywords := strings.Fields(features.keywords)
		var keywordSum float64
		for _, keyword := range keywords {
			keywordSum += float64(profile.Keywords[keyword])
		}
		keywordScore := keywordSum / math.Max(1, float64(len(keywords)))
		score += keywordScore / maxKeyword * 0.1

		recommendations = append(recommendations, &Recommendation{
			Project:    project,
			Score:      clamp01(score),
			Confidence: confidence,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > n {
		recommendations = recommendations[:n]
	}

	return recommendations
}

// safeMax returns the largest count in the map as a float, treating an
// empty map as 1 so it can be used as a division denominator.
func safeMax(counts map[string]int) float64 {
	max := 0
	for _, count := range counts {
		if count > max {
			max = count
		}
	}
	if max == 0 {
		return 1
	}
	return float64(max)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
