// Package extractor cross-references the topic/emotion table and the scored
// product table to surface data-grounded insights. All text is produced from
// fixed templates so the output is deterministic.
package extractor

import (
	"strings"

	"opportunity-insights-go/internal/types"
)

const topicPlaceholder = "{topic}"

type topicTemplate struct {
	emotion  types.Emotion
	title    string
	solution string
}

// inspected emotions, in output order
var topicTemplates = []topicTemplate{
	{
		emotion: types.EmotionWorry,
		title:   "Worry centres on {topic}",
		solution: "To address {topic} concerns:\n" +
			"1. Publish transparent {topic} information\n" +
			"2. Showcase more customer reviews and case studies\n" +
			"3. Offer a {topic} guarantee policy",
	},
	{
		emotion: types.EmotionExcitement,
		title:   "Excitement comes mainly from {topic}",
		solution: "Reinforce the {topic} advantage:\n" +
			"1. Feature {topic} prominently in marketing\n" +
			"2. Collect more customer feedback about {topic}\n" +
			"3. Develop product variants that emphasise {topic}",
	},
}

// ExtractTopicInsights emits one insight per inspected emotion, built from the
// row with the highest percentage for that emotion. Ties keep the earliest
// row. Emotions with no rows produce no insight.
func ExtractTopicInsights(rows []types.TopicEmotionRecord) []types.TopicInsight {
	insights := []types.TopicInsight{}
	for _, tpl := range topicTemplates {
		top, ok := strongest(rows, tpl.emotion)
		if !ok {
			continue
		}
		fill := strings.NewReplacer(topicPlaceholder, top.Topic)
		insights = append(insights, types.TopicInsight{
			Title: fill.Replace(tpl.title),
			Evidence: types.InsightEvidence{
				Emotion:     tpl.emotion,
				Topic:       top.Topic,
				Percentage:  top.Percentage,
				SampleCount: top.Count,
				Keywords:    keywordsOrEmpty(top.Keywords),
			},
			Solution: fill.Replace(tpl.solution),
		})
	}
	return insights
}

func strongest(rows []types.TopicEmotionRecord, emotion types.Emotion) (types.TopicEmotionRecord, bool) {
	var best types.TopicEmotionRecord
	found := false
	for _, r := range rows {
		if types.ParseEmotion(string(r.Emotion)) != emotion {
			continue
		}
		if !found || r.Percentage > best.Percentage {
			best = r
			found = true
		}
	}
	return best, found
}

// findCell returns the first row matching topic and emotion.
func findCell(rows []types.TopicEmotionRecord, topic string, emotion types.Emotion) (types.TopicEmotionRecord, bool) {
	for _, r := range rows {
		if types.NormalizeTopic(r.Topic) == topic && types.ParseEmotion(string(r.Emotion)) == emotion {
			return r, true
		}
	}
	return types.TopicEmotionRecord{}, false
}

func keywordsOrEmpty(k []string) []string {
	if k == nil {
		return []string{}
	}
	out := make([]string, len(k))
	copy(out, k)
	return out
}
