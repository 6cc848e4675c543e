package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
)

// drawLoadingState renders a "Loading..." message in the view.
func drawLoadingState(ctx vxfw.DrawContext, owner vxfw.Widget) (vxfw.Surface, error) {
	return drawMessage(ctx, owner, "Loading...")
}

// drawMessage renders a single dim line of text at the top of the view.
func drawMessage(ctx vxfw.DrawContext, owner vxfw.Widget, text string) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, owner)
	label := richtext.New([]vaxis.Segment{
		{Text: text, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	})
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, labelSurf)
	return s, nil
}

// drawHeader renders bold column headings as the first row of s.
func drawHeader(ctx vxfw.DrawContext, s *vxfw.Surface, text string) error {
	header := richtext.New([]vaxis.Segment{
		{Text: text, Style: vaxis.Style{Attribute: vaxis.AttrBold}},
	})
	headerSurf, err := header.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return err
	}
	s.AddChild(0, 0, headerSurf)
	return nil
}
