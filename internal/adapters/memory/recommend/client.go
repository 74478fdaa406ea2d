// Package recommend is the in-memory recommend.Service. Recommendations are
// seeded per destination; personalization is a stable score ordering.
package recommend

import (
	"context"
	"strings"

	"github.com/safarino/trip-planner-core/internal/domain"
	portrecommend "github.com/safarino/trip-planner-core/internal/ports/out/recommend"
)

var byDestination = map[string][]portrecommend.Item{
	"tehran": {
		{PlaceID: "کاخ_گلستان", Name: "کاخ گلستان", Tags: []string{"history", "culture"}, Score: 0.95},
		{PlaceID: "برج_میلاد", Name: "برج میلاد", Tags: []string{"modern", "sightseeing"}, Score: 0.88},
		{PlaceID: "مجموعه_سعدآباد", Name: "مجموعه سعدآباد", Tags: []string{"history", "culture", "nature"}, Score: 0.85},
		{PlaceID: "بازار_بزرگ_تهران", Name: "بازار بزرگ تهران", Tags: []string{"shopping", "history"}, Score: 0.8},
		{PlaceID: "پل_طبیعت", Name: "پل طبیعت", Tags: []string{"nature", "modern"}, Score: 0.78},
	},
	"isfahan": {
		{PlaceID: "میدان_نقش_جهان", Name: "میدان نقش جهان", Tags: []string{"history", "culture", "shopping"}, Score: 0.97},
		{PlaceID: "مسجد_شیخ_لطف_الله", Name: "مسجد شیخ لطف الله", Tags: []string{"history", "culture", "religion"}, Score: 0.9},
		{PlaceID: "کاخ_عالی_قاپو", Name: "کاخ عالی قاپو", Tags: []string{"history", "culture"}, Score: 0.86},
		{PlaceID: "سی_و_سه_پل", Name: "سی و سه پل", Tags: []string{"history", "nature"}, Score: 0.84},
		{PlaceID: "کلیسای_وانک", Name: "کلیسای وانک", Tags: []string{"history", "culture", "religion"}, Score: 0.8},
	},
	"shiraz": {
		{PlaceID: "تخت_جمشید", Name: "تخت جمشید", Tags: []string{"history", "culture"}, Score: 0.98},
		{PlaceID: "حافظیه", Name: "حافظیه", Tags: []string{"history", "culture", "nature"}, Score: 0.93},
		{PlaceID: "باغ_ارم", Name: "باغ ارم", Tags: []string{"nature", "history"}, Score: 0.87},
		{PlaceID: "ارگ_کریمخان", Name: "ارگ کریمخان", Tags: []string{"history", "culture"}, Score: 0.84},
		{PlaceID: "نارنجستان_قوام", Name: "نارنجستان قوام", Tags: []string{"history", "culture", "nature"}, Score: 0.8},
	},
}

var destinationAliases = map[string]string{
	"tehran": "tehran", "تهران": "tehran",
	"isfahan": "isfahan", "esfahan": "isfahan", "اصفهان": "isfahan",
	"shiraz": "shiraz", "شیراز": "shiraz",
}

type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) PersonalizedRecommendations(ctx context.Context, userID domain.UserID, destination string, season domain.Season) ([]portrecommend.Item, error) {
	_, _, _ = ctx, userID, season
	normalized := strings.ToLower(strings.TrimSpace(destination))
	key, ok := destinationAliases[normalized]
	if !ok {
		for alias, k := range destinationAliases {
			if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
				key = k
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate the seed data.
	items := byDestination[key]
	out := make([]portrecommend.Item, len(items))
	copy(out, items)
	return out, nil
}
