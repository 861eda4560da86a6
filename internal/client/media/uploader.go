package media

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNotImage        = errors.New("you can only upload image files")
	ErrTooManyImages   = errors.New("image limit reached")
	ErrImageTooLarge   = errors.New("image dimensions are too large")
	ErrIndexOutOfRange = errors.New("no image at that position")
)

// Host stores an encoded image and returns its public URL.
type Host interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// File is one image picked by the user.
type File struct {
	Name string
	Data []byte
}

// FileResult is the outcome of one file of AddAll.
type FileResult struct {
	Name string
	URL  string
	Err  error
}

// uploadConcurrency bounds parallel uploads in AddAll.
const uploadConcurrency = 3

// Uploader manages the images of one slot, such as a profile logo or the
// pictures of a wave.
type Uploader struct {
	host      Host
	width     int
	height    int
	maxImages int

	mu      sync.Mutex
	urls    []string
	pending int
}

// NewUploader builds an uploader for width×height images. maxImages <= 0
// means 5.
func NewUploader(host Host, width, height, maxImages int) *Uploader {
	if maxImages <= 0 {
		maxImages = 5
	}
	return &Uploader{host: host, width: width, height: height, maxImages: maxImages}
}

// WithInitial seeds the slot with already uploaded URLs, as when editing an
// existing entity. Blank URLs are skipped.
func (u *Uploader) WithInitial(urls []string) *Uploader {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.urls = u.urls[:0]
	for _, s := range urls {
		if s != "" {
			u.urls = append(u.urls, s)
		}
	}
	return u
}

func (u *Uploader) MaxImages() int { return u.maxImages }

// URLs returns the uploaded URLs in upload order.
func (u *Uploader) URLs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string{}, u.urls...)
}

// Remaining is the number of images that can still be added.
func (u *Uploader) Remaining() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.maxImages - len(u.urls) - u.pending
}

// Remove deletes the URL at i. The object itself stays on the host.
func (u *Uploader) Remove(i int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if i < 0 || i >= len(u.urls) {
		return ErrIndexOutOfRange
	}
	u.urls = slices.Delete(u.urls, i, i+1)
	return nil
}

// Add validates, resizes and uploads one image and returns its URL. On any
// error the slot is unchanged.
func (u *Uploader) Add(ctx context.Context, name string, data []byte) (string, error) {
	if !IsImage(data) {
		return "", fmt.Errorf("%s: %w", name, ErrNotImage)
	}
	if err := u.reserve(); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	url, err := u.upload(ctx, name, data)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending--
	if err != nil {
		return "", err
	}
	u.urls = append(u.urls, url)
	return url, nil
}

// AddAll uploads files in parallel and reports a result per file. A failure
// of one file does not stop the others. Successful URLs are appended in the
// order of files.
func (u *Uploader) AddAll(ctx context.Context, files []File) []FileResult {
	results := make([]FileResult, len(files))
	accepted := make([]bool, len(files))

	for i, f := range files {
		results[i].Name = f.Name
		if !IsImage(f.Data) {
			results[i].Err = fmt.Errorf("%s: %w", f.Name, ErrNotImage)
			continue
		}
		if err := u.reserve(); err != nil {
			results[i].Err = fmt.Errorf("%s: %w", f.Name, err)
			continue
		}
		accepted[i] = true
	}

	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i, f := range files {
		if !accepted[i] {
			continue
		}
		g.Go(func() error {
			results[i].URL, results[i].Err = u.upload(ctx, f.Name, f.Data)
			return nil
		})
	}
	_ = g.Wait()

	u.mu.Lock()
	defer u.mu.Unlock()
	for i := range files {
		if !accepted[i] {
			continue
		}
		u.pending--
		if results[i].Err == nil {
			u.urls = append(u.urls, results[i].URL)
		}
	}
	return results
}

func (u *Uploader) reserve() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.urls)+u.pending >= u.maxImages {
		return fmt.Errorf("%w: at most %d", ErrTooManyImages, u.maxImages)
	}
	u.pending++
	return nil
}

func (u *Uploader) upload(ctx context.Context, name string, data []byte) (string, error) {
	resized, err := Resize(data, u.width, u.height)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	url, err := u.host.Upload(ctx, name, resized)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return url, nil
}
