package nlp

import (
	"math"
)

// Sentiment is the 3-way polarity label derived from the compound score
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valence lexicon in the VADER convention: roughly -4 (most negative) to +4
// (most positive). Trimmed to vocabulary that actually shows up in email.
var valences = map[string]float64{
	"abandon": -1.9, "abuse": -3.2, "accept": 1.6, "accomplish": 1.9,
	"achieve": 1.8, "admire": 2.4, "afraid": -2.2, "aggressive": -1.2,
	"agree": 1.5, "alarm": -1.4, "amazing": 2.8, "angry": -2.3,
	"annoy": -1.9, "anxious": -1.9, "apolog": -0.2, "appreciate": 2.0,
	"approve": 1.7, "awesome": 3.1, "awful": -2.9, "bad": -2.5,
	"benefit": 1.7, "best": 3.2, "better": 1.9, "blame": -2.0,
	"block": -1.4, "bonus": 2.0, "boring": -1.3, "breach": -2.5,
	"brilliant": 2.8, "broken": -1.8, "cancel": -1.4, "celebrate": 2.7,
	"certain": 1.1, "cheap": -0.6, "clean": 1.7, "comfortable": 1.9,
	"complain": -1.7, "concern": -1.2, "confident": 2.2, "confuse": -1.3,
	"congratulations": 2.9, "crash": -2.2, "crisis": -3.1, "critical": -1.5,
	"damage": -2.2, "danger": -2.4, "dead": -3.3, "deadline": -0.4,
	"defect": -1.8, "delay": -1.3, "delight": 2.9, "deny": -1.4,
	"desperate": -2.2, "destroy": -2.7, "difficult": -1.5, "disappoint": -2.3,
	"disaster": -3.1, "dispute": -1.6, "down": -1.2, "dread": -2.2,
	"easy": 1.4, "efficient": 1.8, "emergency": -2.2, "encourage": 1.9,
	"enjoy": 2.2, "error": -1.7, "excellent": 2.7, "excited": 2.4,
	"fail": -2.5, "failure": -2.6, "fantastic": 2.6, "fault": -1.8,
	"fear": -2.2, "fine": 0.8, "fired": -2.6, "fix": 0.8, "flaw": -1.7,
	"forget": -0.9, "fortunate": 2.1, "fraud": -2.8, "free": 2.3,
	"friendly": 2.2, "frustrat": -2.1, "fun": 2.3, "glad": 2.0,
	"good": 1.9, "grateful": 2.3, "great": 3.1, "happy": 2.7,
	"harass": -2.9, "hate": -2.7, "helpful": 1.8, "hope": 1.9,
	"horrible": -2.5, "hurt": -2.4, "ignore": -1.5, "important": 1.0,
	"impressive": 2.3, "improve": 1.9, "incident": -1.4, "injury": -2.2,
	"innovative": 2.1, "interest": 1.6, "issue": -1.0, "join": 1.1,
	"kind": 2.4, "late": -1.1, "launch": 1.0, "lawsuit": -2.3,
	"lose": -2.0, "loss": -2.2, "lost": -1.7, "love": 3.2, "lucky": 2.4,
	"mistake": -1.7, "miss": -1.0, "nice": 1.8, "offend": -2.2,
	"opportunity": 1.8, "outage": -2.0, "overdue": -1.6, "pain": -2.3,
	"panic": -2.5, "perfect": 2.7, "please": 1.2, "pleased": 2.0,
	"positive": 2.0, "problem": -1.7, "progress": 1.6, "promise": 1.3,
	"promote": 1.9, "proud": 2.4, "quit": -1.6, "recommend": 1.8,
	"refuse": -1.6, "regret": -2.1, "reject": -2.0, "relief": 1.9,
	"resolve": 1.4, "respect": 2.1, "risk": -1.5, "sad": -2.1,
	"safe": 1.8, "satisfy": 1.9, "scam": -2.7, "scare": -2.2,
	"severe": -1.9, "smooth": 1.5, "sorry": -0.6, "strong": 2.0,
	"succeed": 2.4, "success": 2.7, "support": 1.7, "terrible": -2.6,
	"thank": 1.9, "thanks": 1.9, "threat": -2.4, "trouble": -2.0,
	"trust": 2.1, "ugly": -2.2, "unable": -1.3, "unfortunate": -2.0,
	"upset": -2.1, "urgent": -0.7, "useful": 1.9, "useless": -1.8,
	"valuable": 2.1, "warn": -1.4, "waste": -1.8, "welcome": 2.0,
	"win": 2.8, "wonderful": 2.7, "worried": -1.9, "worry": -1.9,
	"worst": -3.1, "wrong": -1.9,
}

// negators flip the sign of the following sentiment-bearing word
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "neither": {}, "nor": {},
	"cannot": {}, "can't": {}, "won't": {}, "don't": {}, "doesn't": {},
	"didn't": {}, "isn't": {}, "wasn't": {}, "aren't": {}, "without": {},
	"hardly": {}, "barely": {},
}

// boosters scale the following sentiment-bearing word
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "incredibly": 0.293, "really": 0.267,
	"so": 0.2, "absolutely": 0.293, "completely": 0.267, "highly": 0.267,
	"totally": 0.267, "quite": 0.2, "somewhat": -0.15, "slightly": -0.267,
	"marginally": -0.267, "barely": -0.293,
}

const (
	sentimentNormAlpha = 15.0
	positiveThreshold  = 0.05
	negativeThreshold  = -0.05
	negationScope      = 3
)

// SentimentScorer maps text to a compound polarity score in [-1, 1] and a
// 3-way label. It is stateless and never fails: empty or unscorable text
// yields a neutral zero score.
type SentimentScorer struct{}

// NewSentimentScorer creates a new sentiment scorer
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{}
}

// Score computes the compound polarity score for text
func (s *SentimentScorer) Score(text string) float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	for i, tok := range tokens {
		valence, ok := lookupValence(tok.Lower)
		if !ok {
			continue
		}

		// Scan a short window of preceding tokens for negation and boosters
		for j := i - 1; j >= 0 && j >= i-negationScope; j-- {
			prev := tokens[j].Lower
			if _, neg := negators[prev]; neg {
				valence *= -0.74
				continue
			}
			if scale, boost := boosters[prev]; boost {
				if valence > 0 {
					valence += scale
				} else {
					valence -= scale
				}
			}
		}
		sum += valence
	}

	return normalizeCompound(sum)
}

// Label derives the 3-way label from a compound score via fixed thresholds
func (s *SentimentScorer) Label(score float64) Sentiment {
	switch {
	case score >= positiveThreshold:
		return SentimentPositive
	case score <= negativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// lookupValence matches a token against the lexicon, falling back to a
// prefix match so inflected forms ("frustrated", "apologies") still hit
// their stem entries.
func lookupValence(word string) (float64, bool) {
	if v, ok := valences[word]; ok {
		return v, true
	}
	for l := len(word) - 1; l >= 4; l-- {
		if v, ok := valences[word[:l]]; ok {
			return v, true
		}
	}
	return 0, false
}

// normalizeCompound squashes the raw valence sum into [-1, 1]
func normalizeCompound(sum float64) float64 {
	score := sum / math.Sqrt(sum*sum+sentimentNormAlpha)
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
