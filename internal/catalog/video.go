// BYZRA ⸻ internal/catalog/video.go
// built-in whitelist for video files

package catalog

import "copydetails/internal/propkey"

// format ids of the property sets carrying video tags
var (
	FormatDateImported = propkey.MustGUID("14B81DA1-0135-4D31-96D9-6CBFC9671A99")
	FormatDateEncoded  = propkey.MustGUID("2E4B640D-5019-46D8-8881-55414CC5CAA0")
	FormatMusic        = propkey.MustGUID("56A3372E-CE9C-11D2-9F0E-006097C686F6")
	FormatMedia        = propkey.MustGUID("64440492-4C8B-11D1-8B70-080036B11A03")
	FormatSubscription = propkey.MustGUID("9AEBAE7A-9644-487D-A92C-657585ED751A")
	FormatDlna         = propkey.MustGUID("CFA31B45-525D-4998-BB44-3F7D81542FA4")
	FormatDateReleased = propkey.MustGUID("DE41CC29-6971-4290-B472-F59F2E2F31E2")
	FormatItemDate     = propkey.MustGUID("F7DB74B4-4287-4103-AFBA-F1B13DCD75CF")
)

// listed in catalog order; Build sorts anyway
var videoEntries = []Entry{
	{propkey.Key{Format: FormatDateImported, ID: 18258}, "System.DateImported", ""},
	{propkey.Key{Format: FormatDateEncoded, ID: 100}, "System.Media.DateEncoded", "EncodingTime"},
	{propkey.Key{Format: FormatMusic, ID: 5}, "System.Media.Year", "Year"},
	{propkey.Key{Format: FormatMusic, ID: 38}, "System.Media.SubTitle", "Subtitle"},
	{propkey.Key{Format: FormatMedia, ID: 13}, "System.Media.ClassPrimaryID", "MediaClassPrimaryID"},
	{propkey.Key{Format: FormatMedia, ID: 14}, "System.Media.ClassSecondaryID", "MediaClassSecondaryID"},
	{propkey.Key{Format: FormatMedia, ID: 15}, "System.Media.DVDID", "DVDID"},
	{propkey.Key{Format: FormatMedia, ID: 16}, "System.Media.MCDI", "MCDI"},
	{propkey.Key{Format: FormatMedia, ID: 17}, "System.Media.MetadataContentProvider", "Provider"},
	{propkey.Key{Format: FormatMedia, ID: 18}, "System.Media.ContentDistributor", "ContentDistributor"},
	{propkey.Key{Format: FormatMedia, ID: 22}, "System.Media.Producer", "Producer"},
	{propkey.Key{Format: FormatMedia, ID: 23}, "System.Media.Writer", "Writer"},
	{propkey.Key{Format: FormatMedia, ID: 24}, "System.Media.CollectionGroupID", "CollectionGroupID"},
	{propkey.Key{Format: FormatMedia, ID: 25}, "System.Media.CollectionID", "CollectionID"},
	{propkey.Key{Format: FormatMedia, ID: 26}, "System.Media.ContentID", "ContentID"},
	{propkey.Key{Format: FormatMedia, ID: 27}, "System.Media.CreatorApplication", "ToolName"},
	{propkey.Key{Format: FormatMedia, ID: 28}, "System.Media.CreatorApplicationVersion", "ToolVersion"},
	{propkey.Key{Format: FormatMedia, ID: 30}, "System.Media.Publisher", "Publisher"},
	{propkey.Key{Format: FormatMedia, ID: 32}, "System.Media.AuthorUrl", "AuthorURL"},
	{propkey.Key{Format: FormatMedia, ID: 33}, "System.Media.PromotionUrl", "PromotionURL"},
	{propkey.Key{Format: FormatMedia, ID: 34}, "System.Media.UserWebUrl", "UserWebURL"},
	{propkey.Key{Format: FormatMedia, ID: 35}, "System.Media.UniqueFileIdentifier", "UniqueFileIdentifier"},
	{propkey.Key{Format: FormatMedia, ID: 36}, "System.Media.EncodedBy", "EncodedBy"},
	{propkey.Key{Format: FormatMedia, ID: 38}, "System.Media.ProtectionType", "ProtectionType"},
	{propkey.Key{Format: FormatMedia, ID: 39}, "System.Media.ProviderRating", "ProviderRating"},
	{propkey.Key{Format: FormatMedia, ID: 40}, "System.Media.ProviderStyle", "ProviderStyle"},
	{propkey.Key{Format: FormatMedia, ID: 41}, "System.Media.UserNoAutoInfo", ""},
	{propkey.Key{Format: FormatMedia, ID: 42}, "System.Media.SeriesName", "TVShow"},
	{propkey.Key{Format: FormatMedia, ID: 47}, "System.Media.ThumbnailLargePath", ""},
	{propkey.Key{Format: FormatMedia, ID: 48}, "System.Media.ThumbnailLargeUri", ""},
	{propkey.Key{Format: FormatMedia, ID: 49}, "System.Media.ThumbnailSmallPath", ""},
	{propkey.Key{Format: FormatMedia, ID: 50}, "System.Media.ThumbnailSmallUri", ""},
	{propkey.Key{Format: FormatMedia, ID: 100}, "System.Media.EpisodeNumber", "TVEpisode"},
	{propkey.Key{Format: FormatMedia, ID: 101}, "System.Media.SeasonNumber", "TVSeason"},
	{propkey.Key{Format: FormatSubscription, ID: 100}, "System.Media.SubscriptionContentId", ""},
	{propkey.Key{Format: FormatDlna, ID: 100}, "System.Media.DlnaProfileID", ""},
	{propkey.Key{Format: FormatDateReleased, ID: 100}, "System.Media.DateReleased", "OriginalReleaseTime"},
	{propkey.Key{Format: FormatItemDate, ID: 100}, "System.ItemDate", "MediaCreateDate"},
}

// validated once at init; a malformed table panics before main runs
var Default = MustBuild(videoEntries)

// well-known keys used outside the catalog
var (
	MediaYear      = propkey.Key{Format: FormatMusic, ID: 5}
	MediaPublisher = propkey.Key{Format: FormatMedia, ID: 30}
	MediaEncodedBy = propkey.Key{Format: FormatMedia, ID: 36}
)
