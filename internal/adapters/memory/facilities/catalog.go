package facilities

import (
	"github.com/safarino/trip-planner-core/internal/domain"
	portfacilities "github.com/safarino/trip-planner-core/internal/ports/out/facilities"
)

// Seeded catalog for development and tests. Costs are rials.

var regions = []portfacilities.Region{
	{ID: "1", Name: "Tehran"},
	{ID: "2", Name: "Isfahan"},
	{ID: "3", Name: "Shiraz"},
	{ID: "4", Name: "Mashhad"},
	{ID: "5", Name: "Tabriz"},
	{ID: "6", Name: "Yazd"},
	{ID: "7", Name: "Kerman"},
	{ID: "8", Name: "Rasht"},
	{ID: "9", Name: "Kish"},
	{ID: "10", Name: "Qeshm"},
	{ID: "11", Name: "Ahvaz"},
	{ID: "12", Name: "Bandar Abbas"},
	{ID: "13", Name: "Hamadan"},
	{ID: "14", Name: "Qom"},
	{ID: "15", Name: "Kashan"},
}

type regionAlias struct {
	alias string
	id    domain.RegionID
}

// regionAliases maps Persian names and alternative Latin spellings to region
// ids. Lookup is lowercase. Order matters: the substring fallback in
// ResolveRegion walks this list front to back, so a query mentioning two
// cities always resolves to the earlier entry.
var regionAliases = []regionAlias{
	{"tehran", "1"}, {"تهران", "1"},
	{"isfahan", "2"}, {"esfahan", "2"}, {"اصفهان", "2"},
	{"shiraz", "3"}, {"شیراز", "3"},
	{"mashhad", "4"}, {"mashad", "4"}, {"مشهد", "4"},
	{"tabriz", "5"}, {"تبریز", "5"},
	{"yazd", "6"}, {"یزد", "6"},
	{"kerman", "7"}, {"کرمان", "7"},
	{"rasht", "8"}, {"رشت", "8"},
	{"kish", "9"}, {"کیش", "9"},
	{"qeshm", "10"}, {"قشم", "10"},
	{"ahvaz", "11"}, {"اهواز", "11"},
	{"bandar abbas", "12"}, {"bandarabbas", "12"}, {"بندرعباس", "12"},
	{"hamadan", "13"}, {"hamedan", "13"}, {"همدان", "13"},
	{"qom", "14"}, {"قم", "14"},
	{"kashan", "15"}, {"کاشان", "15"},
}

// regionFacilities holds hotels and restaurants per region. Attractions come
// from the recommender and are resolved through placeFacilities.
var regionFacilities = map[domain.RegionID][]domain.Facility{
	"1": {
		{ID: 1001, Name: "هتل استقلال", Type: domain.FacilityTypeHotel, Latitude: 35.7796, Longitude: 51.4108,
			Cost: 15000000, RegionID: "1", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"luxury"}, Rating: 4.5, Description: "هتل پنج ستاره استقلال تهران"},
		{ID: 1002, Name: "هتل آزادی", Type: domain.FacilityTypeHotel, Latitude: 35.7219, Longitude: 51.3347,
			Cost: 12000000, RegionID: "1", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"luxury"}, Rating: 4.3, Description: "هتل پنج ستاره آزادی"},
		{ID: 1003, Name: "هتل ایبیس", Type: domain.FacilityTypeHotel, Latitude: 35.7010, Longitude: 51.4014,
			Cost: 5000000, RegionID: "1", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"moderate"}, Rating: 3.8, Description: "هتل سه ستاره ایبیس"},
		{ID: 1004, Name: "هتل ایران", Type: domain.FacilityTypeHotel, Latitude: 35.6892, Longitude: 51.3890,
			Cost: 2500000, RegionID: "1", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"economy"}, Rating: 3.0, Description: "هتل دو ستاره ایران"},
		{ID: 1101, Name: "رستوران دیزی سرا", Type: domain.FacilityTypeRestaurant, Latitude: 35.7156, Longitude: 51.4194,
			Cost: 800000, RegionID: "1", VisitDurationMinutes: 90, OpeningHour: 11, ClosingHour: 23,
			Tags: []string{"food", "traditional"}, Rating: 4.2, Description: "رستوران سنتی دیزی سرا"},
		{ID: 1102, Name: "رستوران نایب", Type: domain.FacilityTypeRestaurant, Latitude: 35.7589, Longitude: 51.4103,
			Cost: 1200000, RegionID: "1", VisitDurationMinutes: 90, OpeningHour: 12, ClosingHour: 24,
			Tags: []string{"food", "kebab"}, Rating: 4.5, Description: "رستوران نایب - کباب"},
		{ID: 1103, Name: "فست فود سامان", Type: domain.FacilityTypeRestaurant, Latitude: 35.7012, Longitude: 51.4050,
			Cost: 400000, RegionID: "1", VisitDurationMinutes: 45, OpeningHour: 10, ClosingHour: 23,
			Tags: []string{"food", "fast_food"}, Rating: 3.5, Description: "فست فود سامان"},
	},
	"2": {
		{ID: 2001, Name: "هتل عباسی", Type: domain.FacilityTypeHotel, Latitude: 32.6539, Longitude: 51.6660,
			Cost: 18000000, RegionID: "2", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"luxury", "historic"}, Rating: 4.8, Description: "هتل تاریخی عباسی - قدیمی‌ترین هتل ایران"},
		{ID: 2002, Name: "هتل کوثر", Type: domain.FacilityTypeHotel, Latitude: 32.6446, Longitude: 51.6553,
			Cost: 8000000, RegionID: "2", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"moderate"}, Rating: 4.0, Description: "هتل کوثر اصفهان"},
		{ID: 2003, Name: "هتل ستاره", Type: domain.FacilityTypeHotel, Latitude: 32.6500, Longitude: 51.6700,
			Cost: 3000000, RegionID: "2", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"economy"}, Rating: 3.2, Description: "هتل ستاره اصفهان"},
		{ID: 2101, Name: "رستوران شهرزاد", Type: domain.FacilityTypeRestaurant, Latitude: 32.6550, Longitude: 51.6600,
			Cost: 900000, RegionID: "2", VisitDurationMinutes: 90, OpeningHour: 12, ClosingHour: 23,
			Tags: []string{"food", "traditional"}, Rating: 4.4, Description: "رستوران سنتی شهرزاد"},
		{ID: 2102, Name: "سفره خانه سنتی", Type: domain.FacilityTypeRestaurant, Latitude: 32.6570, Longitude: 51.6680,
			Cost: 600000, RegionID: "2", VisitDurationMinutes: 90, OpeningHour: 11, ClosingHour: 22,
			Tags: []string{"food", "traditional"}, Rating: 4.0, Description: "سفره خانه سنتی اصفهان"},
	},
	"3": {
		{ID: 3001, Name: "هتل چمران", Type: domain.FacilityTypeHotel, Latitude: 29.6314, Longitude: 52.5279,
			Cost: 10000000, RegionID: "3", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"luxury"}, Rating: 4.3, Description: "هتل بزرگ چمران شیراز"},
		{ID: 3002, Name: "هتل پارس", Type: domain.FacilityTypeHotel, Latitude: 29.6200, Longitude: 52.5350,
			Cost: 6000000, RegionID: "3", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"moderate"}, Rating: 3.9, Description: "هتل پارس شیراز"},
		{ID: 3003, Name: "هتل ارم", Type: domain.FacilityTypeHotel, Latitude: 29.6150, Longitude: 52.5400,
			Cost: 2000000, RegionID: "3", OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"economy"}, Rating: 3.0, Description: "هتل ارم شیراز"},
		{ID: 3101, Name: "رستوران شاطر عباس", Type: domain.FacilityTypeRestaurant, Latitude: 29.6250, Longitude: 52.5300,
			Cost: 700000, RegionID: "3", VisitDurationMinutes: 90, OpeningHour: 11, ClosingHour: 23,
			Tags: []string{"food", "traditional"}, Rating: 4.3, Description: "رستوران شاطر عباس"},
		{ID: 3102, Name: "رستوران هفت خوان", Type: domain.FacilityTypeRestaurant, Latitude: 29.6180, Longitude: 52.5380,
			Cost: 1000000, RegionID: "3", VisitDurationMinutes: 90, OpeningHour: 12, ClosingHour: 24,
			Tags: []string{"food", "traditional"}, Rating: 4.5, Description: "رستوران هفت خوان"},
	},
}

// placeFacilities resolves recommender place ids to attraction facilities,
// keyed by region.
var placeFacilities = map[domain.RegionID]map[string]domain.Facility{
	"1": {
		"برج_میلاد": {ID: 1201, Name: "برج میلاد", Type: domain.FacilityTypeAttraction, Latitude: 35.7448, Longitude: 51.3753,
			Cost: 500000, RegionID: "1", VisitDurationMinutes: 120, OpeningHour: 9, ClosingHour: 22,
			Tags: []string{"modern", "sightseeing"}, Rating: 4.3, Description: "برج میلاد - نماد مدرن تهران"},
		"کاخ_گلستان": {ID: 1202, Name: "کاخ گلستان", Type: domain.FacilityTypeAttraction, Latitude: 35.6836, Longitude: 51.4174,
			Cost: 300000, RegionID: "1", VisitDurationMinutes: 150, OpeningHour: 9, ClosingHour: 17,
			Tags: []string{"history", "culture"}, Rating: 4.7, Description: "کاخ گلستان - میراث جهانی یونسکو"},
		"پل_طبیعت": {ID: 1203, Name: "پل طبیعت", Type: domain.FacilityTypeAttraction, Latitude: 35.7635, Longitude: 51.4053,
			Cost: 0, RegionID: "1", VisitDurationMinutes: 60, OpeningHour: 6, ClosingHour: 24,
			Tags: []string{"nature", "modern"}, Rating: 4.4, Description: "پل طبیعت - پل عابر پیاده"},
		"بازار_بزرگ_تهران": {ID: 1204, Name: "بازار بزرگ تهران", Type: domain.FacilityTypeAttraction, Latitude: 35.6762, Longitude: 51.4258,
			Cost: 0, RegionID: "1", VisitDurationMinutes: 180, OpeningHour: 8, ClosingHour: 18,
			Tags: []string{"shopping", "history"}, Rating: 4.1, Description: "بازار بزرگ تهران"},
		"مجموعه_سعدآباد": {ID: 1205, Name: "مجموعه سعدآباد", Type: domain.FacilityTypeAttraction, Latitude: 35.8186, Longitude: 51.4089,
			Cost: 400000, RegionID: "1", VisitDurationMinutes: 180, OpeningHour: 9, ClosingHour: 17,
			Tags: []string{"history", "culture", "nature"}, Rating: 4.5, Description: "مجموعه کاخ‌های سعدآباد"},
	},
	"2": {
		"میدان_نقش_جهان": {ID: 2201, Name: "میدان نقش جهان", Type: domain.FacilityTypeAttraction, Latitude: 32.6575, Longitude: 51.6774,
			Cost: 0, RegionID: "2", VisitDurationMinutes: 120, OpeningHour: 6, ClosingHour: 22,
			Tags: []string{"history", "culture", "shopping"}, Rating: 4.9, Description: "میدان نقش جهان - میراث جهانی"},
		"سی_و_سه_پل": {ID: 2202, Name: "سی و سه پل", Type: domain.FacilityTypeAttraction, Latitude: 32.6421, Longitude: 51.6648,
			Cost: 0, RegionID: "2", VisitDurationMinutes: 60, OpeningHour: 0, ClosingHour: 24,
			Tags: []string{"history", "nature"}, Rating: 4.6, Description: "پل سی و سه چشمه"},
		"مسجد_شیخ_لطف_الله": {ID: 2203, Name: "مسجد شیخ لطف الله", Type: domain.FacilityTypeAttraction, Latitude: 32.6574, Longitude: 51.6780,
			Cost: 200000, RegionID: "2", VisitDurationMinutes: 60, OpeningHour: 9, ClosingHour: 17,
			Tags: []string{"history", "culture", "religion"}, Rating: 4.8, Description: "مسجد شیخ لطف‌الله"},
		"کاخ_عالی_قاپو": {ID: 2204, Name: "کاخ عالی قاپو", Type: domain.FacilityTypeAttraction, Latitude: 32.6576, Longitude: 51.6765,
			Cost: 250000, RegionID: "2", VisitDurationMinutes: 90, OpeningHour: 9, ClosingHour: 18,
			Tags: []string{"history", "culture"}, Rating: 4.5, Description: "کاخ عالی قاپو"},
		"کلیسای_وانک": {ID: 2205, Name: "کلیسای وانک", Type: domain.FacilityTypeAttraction, Latitude: 32.6389, Longitude: 51.6550,
			Cost: 150000, RegionID: "2", VisitDurationMinutes: 90, OpeningHour: 9, ClosingHour: 17,
			Tags: []string{"history", "culture", "religion"}, Rating: 4.4, Description: "کلیسای وانک جلفا"},
	},
	"3": {
		"حافظیه": {ID: 3201, Name: "حافظیه", Type: domain.FacilityTypeAttraction, Latitude: 29.6207, Longitude: 52.5549,
			Cost: 150000, RegionID: "3", VisitDurationMinutes: 90, OpeningHour: 8, ClosingHour: 22,
			Tags: []string{"history", "culture", "nature"}, Rating: 4.8, Description: "آرامگاه حافظ"},
		"تخت_جمشید": {ID: 3202, Name: "تخت جمشید", Type: domain.FacilityTypeAttraction, Latitude: 29.9352, Longitude: 52.8908,
			Cost: 500000, RegionID: "3", VisitDurationMinutes: 240, OpeningHour: 8, ClosingHour: 17,
			Tags: []string{"history", "culture"}, Rating: 4.9, Description: "تخت جمشید - میراث جهانی"},
		"ارگ_کریمخان": {ID: 3203, Name: "ارگ کریمخان", Type: domain.FacilityTypeAttraction, Latitude: 29.6109, Longitude: 52.5389,
			Cost: 200000, RegionID: "3", VisitDurationMinutes: 90, OpeningHour: 8, ClosingHour: 18,
			Tags: []string{"history", "culture"}, Rating: 4.4, Description: "ارگ کریمخان زند"},
		"باغ_ارم": {ID: 3204, Name: "باغ ارم", Type: domain.FacilityTypeAttraction, Latitude: 29.6356, Longitude: 52.5203,
			Cost: 100000, RegionID: "3", VisitDurationMinutes: 90, OpeningHour: 8, ClosingHour: 20,
			Tags: []string{"nature", "history"}, Rating: 4.5, Description: "باغ ارم - میراث جهانی"},
		"نارنجستان_قوام": {ID: 3205, Name: "نارنجستان قوام", Type: domain.FacilityTypeAttraction, Latitude: 29.6125, Longitude: 52.5458,
			Cost: 150000, RegionID: "3", VisitDurationMinutes: 60, OpeningHour: 8, ClosingHour: 18,
			Tags: []string{"history", "culture", "nature"}, Rating: 4.3, Description: "خانه قوام - نارنجستان"},
	},
}
