package tvmao

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// DefaultMaxExpandClicks 点击"查看更多"按钮的最大次数，超过后以已加载的内容为准
	DefaultMaxExpandClicks = 10
	// DefaultSettleDelay 每次点击后等待页面加载的时间
	DefaultSettleDelay = 3 * time.Second
	// DefaultRenderTimeout 单个页面渲染的超时时间
	DefaultRenderTimeout = 60 * time.Second

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

	// expandMoreText 节目列表分页加载的展开按钮文本
	expandMoreText = "查看更多"
)

// Renderer 页面渲染器，返回动态内容加载完成后的页面HTML
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

// ChromeRenderer 基于无头Chrome的页面渲染器
type ChromeRenderer struct {
	maxExpandClicks int           // 展开按钮的最大点击次数
	settleDelay     time.Duration // 每次点击后的等待时间
	timeout         time.Duration // 页面渲染超时时间

	logger *zap.Logger // 日志
}

var _ Renderer = (*ChromeRenderer)(nil)

func NewChromeRenderer(maxExpandClicks int, settleDelay, timeout time.Duration) *ChromeRenderer {
	r := ChromeRenderer{
		maxExpandClicks: maxExpandClicks,
		settleDelay:     settleDelay,
		timeout:         timeout,
		logger:          zap.L(),
	}
	if r.maxExpandClicks <= 0 {
		r.maxExpandClicks = DefaultMaxExpandClicks
	}
	if r.settleDelay <= 0 {
		r.settleDelay = DefaultSettleDelay
	}
	if r.timeout <= 0 {
		r.timeout = DefaultRenderTimeout
	}
	return &r
}

// expandMoreScript 查找并点击一个"查看更多"按钮，返回是否找到
const expandMoreScript = `(() => {
	const nodes = document.querySelectorAll('a, span, div, button');
	for (const node of nodes) {
		if (node.childElementCount === 0 && node.textContent.trim() === '` + expandMoreText + `') {
			node.scrollIntoView();
			node.click();
			return true;
		}
	}
	return false;
})()`

// Render 打开目标页面，尽量展开所有分页加载的节目后返回页面HTML
func (r *ChromeRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	// 设置用户代理和语言环境，提升兼容性并避免反爬虫检测
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.Flag("lang", "zh-CN"),
		chromedp.Flag("accept-lang", "zh-CN"),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		r.expandAll(),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// expandAll 反复点击"查看更多"按钮直到按钮消失或达到最大次数。
// 点击出错时以已加载的内容为准，不中断渲染。
func (r *ChromeRenderer) expandAll() chromedp.ActionFunc {
	return func(ctx context.Context) error {
		for i := 0; i < r.maxExpandClicks; i++ {
			var clicked bool
			if err := chromedp.Evaluate(expandMoreScript, &clicked).Do(ctx); err != nil {
				r.logger.Warn("Failed to click the expand button.", zap.Error(err))
				return nil
			}
			if !clicked {
				return nil
			}

			// 等待点击后动态加载的内容渲染完成
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.settleDelay):
			}
		}
		return nil
	}
}
