package extract

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"
	"github.com/JaimeStill/document-context/pkg/image"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/sync/errgroup"
)

// scan renders up to OCRPages pages through ImageMagick and recognises each
// concurrently. The first VisionPages renders are returned as data URIs.
func (e *Extractor) scan(ctx context.Context, path string) ([]string, []string, error) {
	doc, err := document.OpenPDF(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	renderer, err := image.NewImageMagickRenderer(e.imageConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("create renderer: %w", err)
	}

	pages, err := doc.ExtractAllPages()
	if err != nil {
		return nil, nil, fmt.Errorf("extract pages: %w", err)
	}
	pages = pages[:min(len(pages), e.cfg.OCRPages)]

	texts := make([]string, len(pages))
	images := make([]string, min(len(pages), e.cfg.VisionPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(len(pages)))

	for i, page := range pages {
		pageNum := i + 1

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", pageNum, err)
			}

			text, err := recognize(data, e.cfg.OCRLanguage)
			if err != nil {
				return fmt.Errorf("ocr page %d: %w", pageNum, err)
			}
			texts[i] = text

			if i < len(images) {
				uri, err := encoding.EncodeImageDataURI(data, document.PNG)
				if err != nil {
					return fmt.Errorf("encode page %d: %w", pageNum, err)
				}
				images[i] = uri
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	e.logger.InfoContext(ctx, "ocr complete", "pages", len(pages), "images", len(images))

	return texts, images, nil
}

func (e *Extractor) imageConfig() config.ImageConfig {
	cfg := config.DefaultImageConfig()
	cfg.Format = "png"
	cfg.DPI = e.cfg.DPI
	return cfg
}

func recognize(data []byte, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		return "", fmt.Errorf("set language %s: %w", language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func workerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
