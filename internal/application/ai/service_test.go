package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"speedlist-backend/internal/aivalidate"
	"speedlist-backend/internal/application/ads"
	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/llm"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCompleter returns a canned reply and records the last request.
type fakeCompleter struct {
	reply string
	err   error
	last  llm.Request
}

func (f *fakeCompleter) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.last = req
	return f.reply, f.err
}

func setupAITest(t *testing.T, reply string) (*Service, *fakeCompleter) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Ad{}))
	fake := &fakeCompleter{reply: reply}
	svc := &Service{LLM: fake, Ads: &ads.Service{DB: db}}
	return svc, fake
}

func TestCreateAd_HappyPath(t *testing.T) {
	svc, fake := setupAITest(t, "```json\n{\"title\": \"Red bike\", \"description\": \"Good condition\", \"category\": \"Vehicles\", \"location\": \"Athens\", \"price\": \"180\", \"contact_phone\": \"\", \"contact_email\": \"\", \"visits\": 0}\n```")

	ad, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "selling my red bike for 180", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Red bike", ad.Title)
	require.NotNil(t, ad.Price)
	assert.Equal(t, 180.0, *ad.Price)
	assert.False(t, ad.Approved)

	// The composed request carries system prompt + 2 few-shot exchanges.
	assert.Contains(t, fake.last.System, "single JSON object only")
	assert.Len(t, fake.last.FewShot, 4)
	assert.Equal(t, "selling my red bike for 180", fake.last.Text)
}

func TestCreateAd_EmptyPrompt(t *testing.T) {
	svc, _ := setupAITest(t, "{}")
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "   "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestCreateAd_MissingRequiredFields(t *testing.T) {
	svc, _ := setupAITest(t, `{"title": "", "description": "x"}`)
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "something"})
	var draftErr *DraftError
	require.ErrorAs(t, err, &draftErr)
	assert.Equal(t, []string{"title"}, draftErr.Fields)

	// Nothing was persisted.
	found, listErr := svc.Ads.ListPending(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, found)
}

func TestCreateAd_GarbledReply(t *testing.T) {
	svc, _ := setupAITest(t, "sorry, I can't help with that")
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "sell my couch"})
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	// The client-facing message never echoes the model reply.
	assert.NotContains(t, err.Error(), "sorry")
}

func TestCreateAd_TransportError(t *testing.T) {
	svc, fake := setupAITest(t, "")
	fake.err = errors.New("connection refused")
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "sell my couch"})
	var upErr *UpstreamError
	assert.ErrorAs(t, err, &upErr)
}

func TestCreateAd_NoLLMConfigured(t *testing.T) {
	svc, _ := setupAITest(t, "")
	svc.LLM = nil
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "x"})
	var upErr *UpstreamError
	assert.ErrorAs(t, err, &upErr)
}

func TestCreateAd_OversizedImageRejected(t *testing.T) {
	svc, _ := setupAITest(t, "{}")
	big := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, 4*1024*1024))
	_, err := svc.CreateAd(context.Background(), CreateAdInput{Prompt: "with photo", Images: []string{big}})
	var imgErr *ImageError
	require.ErrorAs(t, err, &imgErr)
	assert.Contains(t, imgErr.Msg, "smaller")
}

func TestSearchAds_FiltersAndResults(t *testing.T) {
	svc, fake := setupAITest(t, `{"keywords": "bike", "category": "", "location": "", "min_price": null, "max_price": 200}`)

	_, err := svc.Ads.CreateFromDraft(context.Background(), ads.CreateFromDraftInput{
		Draft: aivalidate.ListingDraft{Title: "Red bike", Description: "good", Price: f(180)},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Ads.DB.Model(&domain.Ad{}).Where("1 = 1").Update("approved", true).Error)

	found, filters, err := svc.SearchAds(context.Background(), "cheap bike", "en")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "bike", filters.Keywords)
	assert.Nil(t, filters.MinPrice)
	require.NotNil(t, filters.MaxPrice)
	assert.Equal(t, 200.0, *filters.MaxPrice)

	assert.Contains(t, fake.last.System, `"min_price"`)
}

func TestGroundingContext_RedisCacheAndDBFallback(t *testing.T) {
	svc, _ := setupAITest(t, "{}")
	mr := miniredis.RunT(t)
	svc.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	// Empty DB, empty cache: no context.
	assert.Equal(t, "", svc.groundingContext(context.Background()))

	_, err := svc.Ads.CreateFromDraft(context.Background(), ads.CreateFromDraftInput{
		Draft: aivalidate.ListingDraft{Title: "Apartment downtown", Description: "d", Category: "Real Estate", Location: "Athens"},
	})
	require.NoError(t, err)
	require.NoError(t, svc.Ads.DB.Model(&domain.Ad{}).Where("1 = 1").Update("approved", true).Error)

	out := svc.groundingContext(context.Background())
	assert.Contains(t, out, "Apartment downtown")
	assert.Contains(t, out, "[Real Estate]")

	// Cached now; a poisoned cache value proves the cache is being read.
	require.NoError(t, mr.Set("ai:grounding", "cached-hints"))
	assert.Equal(t, "cached-hints", svc.groundingContext(context.Background()))

	// Without Redis the DB still answers.
	svc.Rdb = nil
	assert.Contains(t, svc.groundingContext(context.Background()), "Apartment downtown")
}

func f(v float64) *float64 { return &v }
