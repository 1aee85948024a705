package mappings

import (
	"github.com/agentic-research/playmap/api"
	t "github.com/agentic-research/playmap/internal/transform"
)

// Partition keys of the app detail page.
const (
	dsDetails = "ds:5"
	dsRatings = "ds:6"
	dsPricing = "ds:3"
	dsVersion = "ds:8"

	srDetails     = "Ws7gDc"
	srReviews     = "oCPfdb"
	legacyReviews = "UsvDTd"
)

// appDatasource reads the page layout keyed by data-source ids.
func appDatasource() api.MappingSpec {
	ds5 := func(steps ...int) api.Path { return api.At(dsDetails, append([]int{0}, steps...)...) }
	info := func(steps ...int) api.Path { return ds5(append([]int{12}, steps...)...) }
	ratings := func(steps ...int) api.Path { return api.At(dsRatings, append([]int{0, 6}, steps...)...) }
	offer := func(last int) api.Path { return api.At(dsPricing, 0, 2, 0, 0, 0, 1, 0, last) }

	return api.MappingSpec{
		Entity:  EntityApp,
		Version: "datasource",
		Fields: map[string]api.FieldRule{
			"title":                    {Path: ds5(0, 0)},
			"description":              {Path: ds5(10, 0, 1), Transform: t.DescriptionText},
			"descriptionHTML":          {Path: ds5(10, 0, 1)},
			"summary":                  {Path: ds5(10, 1, 1)},
			"installs":                 {Path: info(9, 0)},
			"minInstalls":              {Path: info(9, 1)},
			"maxInstalls":              {Path: info(9, 2)},
			"score":                    {Path: ratings(0, 1)},
			"scoreText":                {Path: ratings(0, 0)},
			"ratings":                  {Path: ratings(2, 1)},
			"reviews":                  {Path: ratings(3, 1)},
			"histogram":                {Path: ratings(1), Transform: t.Histogram},
			"price":                    {Path: offer(0), Transform: t.Price},
			"free":                     {Path: offer(0), Transform: t.Free},
			"currency":                 {Path: offer(1)},
			"priceText":                {Path: offer(2), Transform: t.PriceText},
			"available":                {Path: info(11, 0), Transform: t.Boolean},
			"offersIAP":                {Path: info(12, 0), Transform: t.Boolean},
			"IAPRange":                 {Path: info(12, 0)},
			"size":                     {Path: api.At(dsVersion, 0)},
			"androidVersion":           {Path: api.At(dsVersion, 2), Transform: t.AndroidVersion},
			"androidVersionText":       {Path: api.At(dsVersion, 2)},
			"developer":                {Path: info(5, 1)},
			"developerId":              {Path: info(5, 5, 4, 2), Transform: t.DeveloperID("id=")},
			"developerEmail":           {Path: info(5, 2, 0)},
			"developerWebsite":         {Path: info(5, 3, 5, 2)},
			"developerAddress":         {Path: info(5, 4, 0)},
			"privacyPolicy":            {Path: info(7, 2)},
			"developerInternalID":      {Path: info(5, 0, 0)},
			"genre":                    {Path: info(13, 0, 0)},
			"genreId":                  {Path: info(13, 0, 2)},
			"familyGenre":              {Path: info(13, 1, 0)},
			"familyGenreId":            {Path: info(13, 1, 2)},
			"icon":                     {Path: info(1, 3, 2)},
			"headerImage":              {Path: info(2, 3, 2)},
			"screenshots":              {Path: info(0), Transform: t.Screenshots},
			"video":                    {Path: info(3, 0, 3, 2)},
			"videoImage":               {Path: info(3, 1, 3, 2)},
			"contentRating":            {Path: info(4, 0)},
			"contentRatingDescription": {Path: info(4, 2, 1)},
			"adSupported":              {Path: info(14, 0), Transform: t.Boolean},
			"released":                 {Path: info(36)},
			"updated":                  {Path: info(8, 0), Transform: t.Scale(1000)},
			"version":                  {Path: api.At(dsVersion, 1)},
			"recentChanges":            {Path: info(6, 1)},
			"comments":                 {Path: api.At(legacyReviews, 0), Transform: t.Comments},
			"editorsChoice":            {Path: info(15, 0), Transform: t.Boolean},
			"features":                 {Path: info(16), Transform: t.Features},
		},
	}
}

// appServiceRequest reads the page layout keyed by service-request ids.
// Upstream dropped the "Varies with device" text here, so a missing Android
// version falls back to the short VARY sentinel.
func appServiceRequest() api.MappingSpec {
	d := func(steps ...int) api.Path { return api.At(srDetails, append([]int{1, 2}, steps...)...) }
	offer := func(last int) api.Path { return d(57, 0, 0, 0, 0, 1, 0, last) }

	return api.MappingSpec{
		Entity:  EntityApp,
		Version: "service-request",
		Fields: map[string]api.FieldRule{
			"title":                    {Path: d(0, 0)},
			"description":              {Path: d(72, 0, 1), Transform: t.DescriptionText},
			"descriptionHTML":          {Path: d(72, 0, 1)},
			"summary":                  {Path: d(73, 0, 1)},
			"installs":                 {Path: d(13, 0)},
			"minInstalls":              {Path: d(13, 1)},
			"maxInstalls":              {Path: d(13, 2)},
			"score":                    {Path: d(51, 0, 1)},
			"scoreText":                {Path: d(51, 0, 0)},
			"ratings":                  {Path: d(51, 2, 1)},
			"reviews":                  {Path: d(51, 3, 1)},
			"histogram":                {Path: d(51, 1), Transform: t.Histogram},
			"price":                    {Path: offer(0), Transform: t.Price},
			"free":                     {Path: offer(0), Transform: t.Free},
			"currency":                 {Path: offer(1)},
			"priceText":                {Path: offer(2), Transform: t.PriceText},
			"available":                {Path: d(13, 2), Transform: t.Boolean},
			"offersIAP":                {Path: d(19, 0), Transform: t.Boolean},
			"IAPRange":                 {Path: d(19, 0)},
			"size":                     {Path: api.At(srDetails, 0)},
			"androidVersion":           {Path: d(140, 0, 0, 0), Transform: t.OrDefault(t.VariesShort)},
			"androidVersionText":       {Path: d(140, 0, 0, 0), Transform: t.AndroidVersionText},
			"developer":                {Path: d(68, 0)},
			"developerId":              {Path: d(68, 1, 4, 2), Transform: t.DeveloperID("id=")},
			"developerEmail":           {Path: d(69, 1, 0)},
			"developerWebsite":         {Path: d(69, 0, 5, 2)},
			"developerAddress":         {Path: d(69, 2, 0)},
			"privacyPolicy":            {Path: d(99, 0, 5, 2)},
			"developerInternalID":      {Path: d(68, 1, 4, 2), Transform: t.DeveloperID("id=")},
			"genre":                    {Path: d(79, 0, 0, 0)},
			"genreId":                  {Path: d(79, 0, 0, 2)},
			"familyGenre":              {Path: api.At(srDetails, 0, 12, 13, 1, 0)},
			"familyGenreId":            {Path: api.At(srDetails, 0, 12, 13, 1, 2)},
			"icon":                     {Path: d(95, 0, 3, 2)},
			"headerImage":              {Path: d(96, 0, 3, 2)},
			"screenshots":              {Path: d(78, 0), Transform: t.Screenshots},
			"video":                    {Path: d(100, 0, 0, 3, 2)},
			"videoImage":               {Path: d(100, 0, 1, 3, 2)},
			"contentRating":            {Path: d(9, 0)},
			"contentRatingDescription": {Path: d(9, 2, 1)},
			"adSupported":              {Path: api.At(srDetails, 0, 1, 2, 48, 0), Transform: t.Boolean},
			"released":                 {Path: d(10, 0)},
			"updated":                  {Path: d(145, 0, 1, 0), Transform: t.Scale(1000)},
			"version":                  {Path: d(140, 0, 0, 0), Transform: t.OrDefault(t.VariesLong)},
			"recentChanges":            {Path: d(144, 1, 1)},
			"comments":                 {Path: api.At(srReviews, 0), Transform: t.Comments},
			"editorsChoice":            {Path: api.At(srDetails, 0, 12, 15, 0), Transform: t.Boolean},
			// No known location in this layout.
			"features": {Path: api.Rel(), Transform: t.Const([]api.Feature{})},
		},
	}
}

// App is the version set for the app detail page, newest layout last.
func App() api.Versions {
	return api.Versions{
		Entity: EntityApp,
		Specs:  []api.MappingSpec{appDatasource(), appServiceRequest()},
	}
}
