// Package wiki is the in-memory wiki.Service with seeded destination texts.
package wiki

import (
	"context"
	"strings"
)

var descriptions = map[string]string{
	"tehran":  "تهران پایتخت و بزرگترین شهر ایران است. این شهر مرکز سیاسی، اقتصادی و فرهنگی کشور محسوب می‌شود.",
	"isfahan": "اصفهان یکی از شهرهای تاریخی ایران است که به خاطر معماری اسلامی و میدان نقش جهان شهرت جهانی دارد.",
	"shiraz":  "شیراز شهر شاعران و گل‌های رنگارنگ است. این شهر زادگاه حافظ و سعدی است.",
	"mashhad": "مشهد دومین شهر پرجمعیت ایران و مهمترین مرکز زیارتی کشور است.",
	"tabriz":  "تبریز یکی از قدیمی‌ترین شهرهای ایران و مرکز استان آذربایجان شرقی است.",
	"yazd":    "یزد شهر بادگیرها و قنات‌هاست و به عنوان میراث جهانی یونسکو ثبت شده است.",
	"kerman":  "کرمان شهری تاریخی با آثار باستانی متعدد و صنایع دستی منحصربفرد است.",
	"rasht":   "رشت مرکز استان گیلان و پایتخت غذایی ایران است.",
	"kish":    "جزیره کیش یکی از مقاصد گردشگری محبوب ایران در خلیج فارس است.",
	"qeshm":   "قشم بزرگترین جزیره خلیج فارس با جاذبه‌های طبیعی منحصربفرد است.",
}

var aliases = map[string]string{
	"tehran": "tehran", "تهران": "tehran",
	"isfahan": "isfahan", "esfahan": "isfahan", "اصفهان": "isfahan",
	"shiraz": "shiraz", "شیراز": "shiraz",
	"mashhad": "mashhad", "mashad": "mashhad", "مشهد": "mashhad",
	"tabriz": "tabriz", "تبریز": "tabriz",
	"yazd": "yazd", "یزد": "yazd",
	"kerman": "kerman", "کرمان": "kerman",
	"rasht": "rasht", "رشت": "rasht",
	"kish": "kish", "کیش": "kish",
	"qeshm": "qeshm", "قشم": "qeshm",
}

type Client struct{}

func NewClient() *Client { return &Client{} }

// DestinationBasicInfo returns the seeded description, or an empty string
// for unknown destinations.
func (c *Client) DestinationBasicInfo(ctx context.Context, destinationName string) (string, error) {
	_ = ctx
	normalized := strings.ToLower(strings.TrimSpace(destinationName))

	if key, ok := aliases[normalized]; ok {
		return descriptions[key], nil
	}
	for alias, key := range aliases {
		if strings.Contains(normalized, alias) || strings.Contains(alias, normalized) {
			return descriptions[key], nil
		}
	}
	return "", nil
}
