package draft

import (
	"encoding/json"
	"path/filepath"
)

// Project document file names. CapCut writes the content of its own projects
// as draft_info.json; drafts created by this package use draft_content.json,
// which CapCut also accepts on import.
const (
	ContentFileName = "draft_content.json"
	InfoFileName    = "draft_info.json"
	MetaFileName    = "draft_meta_info.json"
)

// This file owns every fixed-default field of the external two-document
// schema. Many fields have no semantic role here, but their absence or a
// wrong type makes CapCut reject the project file, so the full key set is
// kept in one reviewable place.

type timeRangeDoc struct {
	Duration int64 `json:"duration"`
	Start    int64 `json:"start"`
}

type xyDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type flipDoc struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

type clipDoc struct {
	Alpha     float64 `json:"alpha"`
	Flip      flipDoc `json:"flip"`
	Rotation  float64 `json:"rotation"`
	Scale     xyDoc   `json:"scale"`
	Transform xyDoc   `json:"transform"`
}

type hdrSettingsDoc struct {
	Intensity float64 `json:"intensity"`
	Mode      int     `json:"mode"`
	Nits      int     `json:"nits"`
}

type responsiveLayoutDoc struct {
	Enable              bool   `json:"enable"`
	HorizontalPosLayout int    `json:"horizontal_pos_layout"`
	SizeLayout          int    `json:"size_layout"`
	TargetFollow        string `json:"target_follow"`
	VerticalPosLayout   int    `json:"vertical_pos_layout"`
}

type uniformScaleDoc struct {
	On    bool    `json:"on"`
	Value float64 `json:"value"`
}

type segmentDoc struct {
	ID                      string              `json:"id"`
	MaterialID              string              `json:"material_id"`
	TargetTimerange         timeRangeDoc        `json:"target_timerange"`
	SourceTimerange         timeRangeDoc        `json:"source_timerange"`
	Cartoon                 bool                `json:"cartoon"`
	Clip                    clipDoc             `json:"clip"`
	CommonKeyframes         []any               `json:"common_keyframes"`
	EnableAdjust            bool                `json:"enable_adjust"`
	EnableColorCorrect      bool                `json:"enable_color_correct_adjust"`
	EnableColorCurves       bool                `json:"enable_color_curves"`
	EnableColorMatch        bool                `json:"enable_color_match_adjust"`
	EnableColorWheels       bool                `json:"enable_color_wheels"`
	EnableHSL               bool                `json:"enable_hsl"`
	EnableLUT               bool                `json:"enable_lut"`
	ExtraMaterialRefs       []any               `json:"extra_material_refs"`
	GroupID                 string              `json:"group_id"`
	HDRSettings             hdrSettingsDoc      `json:"hdr_settings"`
	IntensifiesAudio        bool                `json:"intensifies_audio"`
	IsPlaceholder           bool                `json:"is_placeholder"`
	IsToneModify            bool                `json:"is_tone_modify"`
	KeyframeRefs            []any               `json:"keyframe_refs"`
	LastNonzeroVolume       float64             `json:"last_nonzero_volume"`
	RenderIndex             int                 `json:"render_index"`
	ResponsiveLayout        responsiveLayoutDoc `json:"responsive_layout"`
	Reverse                 bool                `json:"reverse"`
	Speed                   float64             `json:"speed"`
	TemplateID              string              `json:"template_id"`
	TemplateScene           string              `json:"template_scene"`
	TrackAttribute          int                 `json:"track_attribute"`
	TrackRenderIndex        int                 `json:"track_render_index"`
	UniformScale            uniformScaleDoc     `json:"uniform_scale"`
	Visible                 bool                `json:"visible"`
	Volume                  float64             `json:"volume"`
}

func baseSegmentDoc(id, materialID string, target, source timeRangeDoc) segmentDoc {
	return segmentDoc{
		ID:              id,
		MaterialID:      materialID,
		TargetTimerange: target,
		SourceTimerange: source,
		Clip: clipDoc{
			Alpha: 1.0,
			Scale: xyDoc{X: 1.0, Y: 1.0},
		},
		CommonKeyframes:   []any{},
		EnableColorCurves: true,
		EnableColorWheels: true,
		ExtraMaterialRefs: []any{},
		HDRSettings:       hdrSettingsDoc{Intensity: 1.0, Mode: 1, Nits: 1000},
		KeyframeRefs:      []any{},
		LastNonzeroVolume: 1.0,
		Speed:             1.0,
		TemplateScene:     "default",
		UniformScale:      uniformScaleDoc{On: true, Value: 1.0},
		Visible:           true,
		Volume:            1.0,
	}
}

func newVideoSegmentDoc(s VideoSegment) segmentDoc {
	doc := baseSegmentDoc(s.ID, s.MaterialID,
		timeRangeDoc{Start: ToMicros(s.TimelineStart), Duration: ToMicros(s.Duration)},
		timeRangeDoc{Start: ToMicros(s.SourceStart), Duration: ToMicros(s.Duration)},
	)
	doc.EnableAdjust = true
	return doc
}

func newTextSegmentDoc(s TextSegment, positionY float64) segmentDoc {
	doc := baseSegmentDoc(s.ID, s.MaterialID,
		timeRangeDoc{Start: ToMicros(s.TimelineStart), Duration: ToMicros(s.Duration)},
		timeRangeDoc{Start: 0, Duration: ToMicros(s.Duration)},
	)
	// Text transform is center-relative; 0.8 maps to the lower third.
	doc.Clip.Transform = xyDoc{X: 0.0, Y: positionY - 0.5}
	doc.RenderIndex = 11000
	return doc
}

type videoMaterialDoc struct {
	ID                string       `json:"id"`
	Type              string       `json:"type"`
	Path              string       `json:"path"`
	Duration          int64        `json:"duration"`
	Width             int          `json:"width"`
	Height            int          `json:"height"`
	CategoryID        string       `json:"category_id"`
	CategoryName      string       `json:"category_name"`
	CreateTime        int64        `json:"create_time"`
	ExtraInfo         string       `json:"extra_info"`
	ImportTime        int64        `json:"import_time"`
	ImportTimeMS      int64        `json:"import_time_ms"`
	LocalMaterialID   string       `json:"local_material_id"`
	MaterialID        string       `json:"material_id"`
	MaterialName      string       `json:"material_name"`
	MediaPath         string       `json:"media_path"`
	Metetype          string       `json:"metetype"`
	RoughcutTimeRange timeRangeDoc `json:"roughcut_time_range"`
	SubTimeRange      timeRangeDoc `json:"sub_time_range"`
}

func newVideoMaterialDoc(m VideoMaterial, now int64) videoMaterialDoc {
	durUS := ToMicros(m.Duration)
	return videoMaterialDoc{
		ID:                m.ID,
		Type:              "video",
		Path:              m.Path,
		Duration:          durUS,
		Width:             m.Width,
		Height:            m.Height,
		CategoryName:      "local",
		CreateTime:        now,
		ImportTime:        now,
		ImportTimeMS:      now * 1000,
		LocalMaterialID:   NewLocalID(),
		MaterialID:        m.ID,
		MaterialName:      filepath.Base(m.Path),
		Metetype:          "video",
		RoughcutTimeRange: timeRangeDoc{Start: 0, Duration: durUS},
		SubTimeRange:      timeRangeDoc{Start: -1, Duration: -1},
	}
}

type textContentStyleDoc struct {
	Fill struct {
		Alpha   float64 `json:"alpha"`
		Content struct {
			RenderType string `json:"render_type"`
			Solid      struct {
				Color []float64 `json:"color"`
			} `json:"solid"`
		} `json:"content"`
	} `json:"fill"`
	Font struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	} `json:"font"`
	Range []int `json:"range"`
	Size  int   `json:"size"`
}

type textContentDoc struct {
	Styles []textContentStyleDoc `json:"styles"`
	Text   string                `json:"text"`
}

// encodeTextContent builds the JSON-encoded style blob CapCut embeds inside
// each text material.
func encodeTextContent(text string, style TextStyle) string {
	var s textContentStyleDoc
	s.Fill.Alpha = 1.0
	s.Fill.Content.RenderType = "solid"
	s.Fill.Content.Solid.Color = []float64{1.0, 1.0, 1.0}
	s.Font.Path = style.FontPath
	s.Range = []int{0, len([]rune(text))}
	s.Size = style.FontSize

	b, _ := json.Marshal(textContentDoc{Styles: []textContentStyleDoc{s}, Text: text})
	return string(b)
}

type captionTemplateInfoDoc struct {
	CategoryID     string `json:"category_id"`
	CategoryName   string `json:"category_name"`
	EffectID       string `json:"effect_id"`
	IsNew          bool   `json:"is_new"`
	Path           string `json:"path"`
	RequestID      string `json:"request_id"`
	ResourceID     string `json:"resource_id"`
	ResourceName   string `json:"resource_name"`
	SourcePlatform int    `json:"source_platform"`
}

type textMaterialDoc struct {
	ID                       string                 `json:"id"`
	Type                     string                 `json:"type"`
	AddType                  int                    `json:"add_type"`
	Alignment                int                    `json:"alignment"`
	BackgroundAlpha          float64                `json:"background_alpha"`
	BackgroundColor          string                 `json:"background_color"`
	BackgroundHeight         float64                `json:"background_height"`
	BackgroundHorizontalOff  float64                `json:"background_horizontal_offset"`
	BackgroundRoundRadius    float64                `json:"background_round_radius"`
	BackgroundStyle          int                    `json:"background_style"`
	BackgroundVerticalOff    float64                `json:"background_vertical_offset"`
	BackgroundWidth          float64                `json:"background_width"`
	BoldWidth                float64                `json:"bold_width"`
	BorderAlpha              float64                `json:"border_alpha"`
	BorderColor              string                 `json:"border_color"`
	BorderWidth              float64                `json:"border_width"`
	CaptionTemplateInfo      captionTemplateInfoDoc `json:"caption_template_info"`
	CheckFlag                int                    `json:"check_flag"`
	ComboInfo                struct {
		TextTemplates []any `json:"text_templates"`
	} `json:"combo_info"`
	Content                  string  `json:"content"`
	FixedHeight              float64 `json:"fixed_height"`
	FixedWidth               float64 `json:"fixed_width"`
	FontCategoryID           string  `json:"font_category_id"`
	FontCategoryName         string  `json:"font_category_name"`
	FontID                   string  `json:"font_id"`
	FontName                 string  `json:"font_name"`
	FontPath                 string  `json:"font_path"`
	FontResourceID           string  `json:"font_resource_id"`
	FontSize                 int     `json:"font_size"`
	FontSourcePlatform       int     `json:"font_source_platform"`
	FontTeamID               string  `json:"font_team_id"`
	FontTitle                string  `json:"font_title"`
	FontURL                  string  `json:"font_url"`
	Fonts                    []any   `json:"fonts"`
	ForceApplyLineMaxWidth   bool    `json:"force_apply_line_max_width"`
	GlobalAlpha              float64 `json:"global_alpha"`
	GroupID                  string  `json:"group_id"`
	HasShadow                bool    `json:"has_shadow"`
	InitialScale             float64 `json:"initial_scale"`
	InnerPadding             float64 `json:"inner_padding"`
	IsRichText               bool    `json:"is_rich_text"`
	ItalicDegree             int     `json:"italic_degree"`
	KTVColor                 string  `json:"ktv_color"`
	Language                 string  `json:"language"`
	LayerWeight              int     `json:"layer_weight"`
	LetterSpacing            float64 `json:"letter_spacing"`
	LineFeed                 int     `json:"line_feed"`
	LineMaxWidth             float64 `json:"line_max_width"`
	LineSpacing              float64 `json:"line_spacing"`
	MultiLanguageCurrent     string  `json:"multi_language_current"`
	Name                     string  `json:"name"`
	OriginalSize             []any   `json:"original_size"`
	PresetCategory           string  `json:"preset_category"`
	PresetCategoryID         string  `json:"preset_category_id"`
	PresetHasSetAlignment    bool    `json:"preset_has_set_alignment"`
	PresetID                 string  `json:"preset_id"`
	PresetIndex              int     `json:"preset_index"`
	PresetName               string  `json:"preset_name"`
	RecognizeTaskID          string  `json:"recognize_task_id"`
	RecognizeType            int     `json:"recognize_type"`
	RelevanceSegment         []any   `json:"relevance_segment"`
	ShadowAlpha              float64 `json:"shadow_alpha"`
	ShadowAngle              float64 `json:"shadow_angle"`
	ShadowColor              string  `json:"shadow_color"`
	ShadowDistance           float64 `json:"shadow_distance"`
	ShadowPoint              xyDoc   `json:"shadow_point"`
	ShadowSmoothing          float64 `json:"shadow_smoothing"`
	ShapeClipX               bool    `json:"shape_clip_x"`
	ShapeClipY               bool    `json:"shape_clip_y"`
	SourceFrom               string  `json:"source_from"`
	StyleName                string  `json:"style_name"`
	SubType                  int     `json:"sub_type"`
	SubtitleKeywords         any     `json:"subtitle_keywords"`
	TextAlpha                float64 `json:"text_alpha"`
	TextColor                string  `json:"text_color"`
	TextCurve                any     `json:"text_curve"`
	TextPresetResourceID     string  `json:"text_preset_resource_id"`
	TextSize                 int     `json:"text_size"`
	TextToAudioIDs           []any   `json:"text_to_audio_ids"`
	TTSAutoUpdate            bool    `json:"tts_auto_update"`
	Typesetting              int     `json:"typesetting"`
	Underline                bool    `json:"underline"`
	UnderlineOffset          float64 `json:"underline_offset"`
	UnderlineWidth           float64 `json:"underline_width"`
	UseEffectDefaultColor    bool    `json:"use_effect_default_color"`
	Words                    struct {
		EndTime   []any `json:"end_time"`
		StartTime []any `json:"start_time"`
		Text      []any `json:"text"`
	} `json:"words"`
}

func newTextMaterialDoc(m TextMaterial) textMaterialDoc {
	style := m.Style

	backgroundStyle := 0
	if style.BackgroundColor != "" {
		backgroundStyle = 1
	}
	boldWidth := 0.0
	if style.Bold {
		boldWidth = 1.0
	}

	doc := textMaterialDoc{
		ID:                    m.ID,
		Type:                  "text",
		Alignment:             1,
		BackgroundAlpha:       style.BackgroundAlpha,
		BackgroundColor:       style.BackgroundColor,
		BackgroundHeight:      0.14,
		BackgroundStyle:       backgroundStyle,
		BackgroundWidth:       0.14,
		BoldWidth:             boldWidth,
		BorderAlpha:           1.0,
		BorderWidth:           0.08,
		CheckFlag:             7,
		Content:               encodeTextContent(m.Text, style),
		FixedHeight:           -1.0,
		FixedWidth:            -1.0,
		FontPath:              style.FontPath,
		FontSize:              style.FontSize,
		Fonts:                 []any{},
		GlobalAlpha:           1.0,
		InitialScale:          1.0,
		InnerPadding:          -1.0,
		LayerWeight:           1,
		LineFeed:              1,
		LineMaxWidth:          0.82,
		LineSpacing:           0.02,
		MultiLanguageCurrent:  "none",
		OriginalSize:          []any{},
		RelevanceSegment:      []any{},
		ShadowAlpha:           0.9,
		ShadowAngle:           -45.0,
		ShadowDistance:        5.0,
		ShadowPoint:           xyDoc{X: 0.6363961030678928, Y: -0.6363961030678928},
		ShadowSmoothing:       0.45,
		TextAlpha:             1.0,
		TextColor:             style.FontColor,
		TextSize:              style.FontSize,
		TextToAudioIDs:        []any{},
		UnderlineOffset:       0.22,
		UnderlineWidth:        0.05,
		UseEffectDefaultColor: true,
	}
	doc.ComboInfo.TextTemplates = []any{}
	doc.Words.EndTime = []any{}
	doc.Words.StartTime = []any{}
	doc.Words.Text = []any{}
	return doc
}

// Track kinds in the content document.
const (
	TrackKindVideo = "video"
	TrackKindText  = "text"
)

type trackDoc struct {
	Attribute     int          `json:"attribute"`
	Flag          int          `json:"flag"`
	ID            string       `json:"id"`
	IsDefaultName bool         `json:"is_default_name"`
	Name          string       `json:"name"`
	Segments      []segmentDoc `json:"segments"`
	Type          string       `json:"type"`
}

func newTrackDoc(kind string, segments []segmentDoc) trackDoc {
	if segments == nil {
		segments = []segmentDoc{}
	}
	return trackDoc{
		ID:            NewObjectID(),
		IsDefaultName: true,
		Segments:      segments,
		Type:          kind,
	}
}

type canvasConfigDoc struct {
	Height int    `json:"height"`
	Ratio  string `json:"ratio"`
	Width  int    `json:"width"`
}

type platformDoc struct {
	AppID      int    `json:"app_id"`
	AppSource  string `json:"app_source"`
	AppVersion string `json:"app_version"`
	DeviceID   string `json:"device_id"`
	HardDiskID string `json:"hard_disk_id"`
	MacAddress string `json:"mac_address"`
	OS         string `json:"os"`
	OSVersion  string `json:"os_version"`
}

func newPlatformDoc() platformDoc { return platformDoc{OS: "mac"} }

type keyframesDoc struct {
	Adjusts    []any `json:"adjusts"`
	Audios     []any `json:"audios"`
	Effects    []any `json:"effects"`
	Filters    []any `json:"filters"`
	Handwrites []any `json:"handwrites"`
	Stickers   []any `json:"stickers"`
	Texts      []any `json:"texts"`
	Videos     []any `json:"videos"`
}

func newKeyframesDoc() keyframesDoc {
	return keyframesDoc{
		Adjusts: []any{}, Audios: []any{}, Effects: []any{}, Filters: []any{},
		Handwrites: []any{}, Stickers: []any{}, Texts: []any{}, Videos: []any{},
	}
}

type projectConfigDoc struct {
	AdjustMaxIndex        int    `json:"adjust_max_index"`
	AttachmentInfo        []any  `json:"attachment_info"`
	CombinationMaxIndex   int    `json:"combination_max_index"`
	ExportRange           any    `json:"export_range"`
	ExtractAudioLastIndex int    `json:"extract_audio_last_index"`
	LyricsRecognitionID   string `json:"lyrics_recognition_id"`
	LyricsSync            bool   `json:"lyrics_sync"`
	LyricsTaskinfo        []any  `json:"lyrics_taskinfo"`
	MaintrackAdsorb       bool   `json:"maintrack_adsorb"`
	MaterialSaveMode      int    `json:"material_save_mode"`
	MultiLanguageCurrent  string `json:"multi_language_current"`
	MultiLanguageList     []any  `json:"multi_language_list"`
	MultiLanguageMain     string `json:"multi_language_main"`
	MultiLanguageMode     string `json:"multi_language_mode"`
	OriginalSoundLastIdx  int    `json:"original_sound_last_index"`
	RecordAudioLastIndex  int    `json:"record_audio_last_index"`
	StickerMaxIndex       int    `json:"sticker_max_index"`
	SubtitleKeywordsConf  any    `json:"subtitle_keywords_config"`
	SubtitleRecognitionID string `json:"subtitle_recognition_id"`
	SubtitleSync          bool   `json:"subtitle_sync"`
	SubtitleTaskinfo      []any  `json:"subtitle_taskinfo"`
	SystemFontList        []any  `json:"system_font_list"`
	TextAnimationLastIdx  int    `json:"text_animation_last_index"`
	TextToAudioIDs        []any  `json:"text_to_audio_ids"`
	VideoMute             bool   `json:"video_mute"`
	ZoomInfoParams        any    `json:"zoom_info_params"`
}

func newProjectConfigDoc() projectConfigDoc {
	return projectConfigDoc{
		AdjustMaxIndex:        1,
		AttachmentInfo:        []any{},
		CombinationMaxIndex:   1,
		ExtractAudioLastIndex: 1,
		LyricsSync:            true,
		LyricsTaskinfo:        []any{},
		MaintrackAdsorb:       true,
		MultiLanguageCurrent:  "none",
		MultiLanguageList:     []any{},
		MultiLanguageMain:     "none",
		MultiLanguageMode:     "none",
		OriginalSoundLastIdx:  1,
		RecordAudioLastIndex:  1,
		StickerMaxIndex:       1,
		SubtitleSync:          true,
		SubtitleTaskinfo:      []any{},
		SystemFontList:        []any{},
		TextAnimationLastIdx:  1,
		TextToAudioIDs:        []any{},
	}
}

type materialsDoc struct {
	Adjusts              []any              `json:"adjusts"`
	AudioBalances        []any              `json:"audio_balances"`
	AudioEffects         []any              `json:"audio_effects"`
	AudioFades           []any              `json:"audio_fades"`
	AudioTrackIndexes    []any              `json:"audio_track_indexes"`
	Audios               []any              `json:"audios"`
	Beats                []any              `json:"beats"`
	Canvases             []any              `json:"canvases"`
	Chromas              []any              `json:"chromas"`
	ColorCurves          []any              `json:"color_curves"`
	DigitalHumans        []any              `json:"digital_humans"`
	Drafts               []any              `json:"drafts"`
	Effects              []any              `json:"effects"`
	Flowers              []any              `json:"flowers"`
	GreenScreens         []any              `json:"green_screens"`
	Handwrites           []any              `json:"handwrites"`
	HSL                  []any              `json:"hsl"`
	Images               []any              `json:"images"`
	LogColorWheels       []any              `json:"log_color_wheels"`
	Loudnesses           []any              `json:"loudnesses"`
	ManualDeformations   []any              `json:"manual_deformations"`
	Masks                []any              `json:"masks"`
	MaterialAnimations   []any              `json:"material_animations"`
	MaterialColors       []any              `json:"material_colors"`
	MultiLanguageRefs    []any              `json:"multi_language_refs"`
	Placeholders         []any              `json:"placeholders"`
	PluginEffects        []any              `json:"plugin_effects"`
	PrimaryColorWheels   []any              `json:"primary_color_wheels"`
	RealtimeDenoises     []any              `json:"realtime_denoises"`
	Shapes               []any              `json:"shapes"`
	SmartCrops           []any              `json:"smart_crops"`
	SmartRelights        []any              `json:"smart_relights"`
	SoundChannelMappings []any              `json:"sound_channel_mappings"`
	Speeds               []any              `json:"speeds"`
	Stickers             []any              `json:"stickers"`
	TailLeaders          []any              `json:"tail_leaders"`
	TextTemplates        []any              `json:"text_templates"`
	Texts                []textMaterialDoc  `json:"texts"`
	TimeMarks            []any              `json:"time_marks"`
	Transitions          []any              `json:"transitions"`
	VideoEffects         []any              `json:"video_effects"`
	VideoTrackings       []any              `json:"video_trackings"`
	Videos               []videoMaterialDoc `json:"videos"`
	VocalBeautifys       []any              `json:"vocal_beautifys"`
	VocalSeparations     []any              `json:"vocal_separations"`
}

func newMaterialsDoc(videos []videoMaterialDoc, texts []textMaterialDoc) materialsDoc {
	if videos == nil {
		videos = []videoMaterialDoc{}
	}
	if texts == nil {
		texts = []textMaterialDoc{}
	}
	return materialsDoc{
		Adjusts: []any{}, AudioBalances: []any{}, AudioEffects: []any{},
		AudioFades: []any{}, AudioTrackIndexes: []any{}, Audios: []any{},
		Beats: []any{}, Canvases: []any{}, Chromas: []any{}, ColorCurves: []any{},
		DigitalHumans: []any{}, Drafts: []any{}, Effects: []any{}, Flowers: []any{},
		GreenScreens: []any{}, Handwrites: []any{}, HSL: []any{}, Images: []any{},
		LogColorWheels: []any{}, Loudnesses: []any{}, ManualDeformations: []any{},
		Masks: []any{}, MaterialAnimations: []any{}, MaterialColors: []any{},
		MultiLanguageRefs: []any{}, Placeholders: []any{}, PluginEffects: []any{},
		PrimaryColorWheels: []any{}, RealtimeDenoises: []any{}, Shapes: []any{},
		SmartCrops: []any{}, SmartRelights: []any{}, SoundChannelMappings: []any{},
		Speeds: []any{}, Stickers: []any{}, TailLeaders: []any{}, TextTemplates: []any{},
		Texts: texts, TimeMarks: []any{}, Transitions: []any{}, VideoEffects: []any{},
		VideoTrackings: []any{}, Videos: videos, VocalBeautifys: []any{},
		VocalSeparations: []any{},
	}
}

type contentDoc struct {
	CanvasConfig           canvasConfigDoc  `json:"canvas_config"`
	ColorSpace             int              `json:"color_space"`
	Config                 projectConfigDoc `json:"config"`
	Cover                  string           `json:"cover"`
	CreateTime             int64            `json:"create_time"`
	Duration               int64            `json:"duration"`
	ExtraInfo              string           `json:"extra_info"`
	FPS                    float64          `json:"fps"`
	FreeRenderIndexModeOn  bool             `json:"free_render_index_mode_on"`
	GroupContainer         any              `json:"group_container"`
	ID                     string           `json:"id"`
	KeyframeGraphList      []any            `json:"keyframe_graph_list"`
	Keyframes              keyframesDoc     `json:"keyframes"`
	LastModifiedPlatform   platformDoc      `json:"last_modified_platform"`
	Materials              materialsDoc     `json:"materials"`
	MutableConfig          any              `json:"mutable_config"`
	Name                   string           `json:"name"`
	NewVersion             string           `json:"new_version"`
	Platform               platformDoc      `json:"platform"`
	Relationships          []any            `json:"relationships"`
	RenderIndexTrackModeOn bool             `json:"render_index_track_mode_on"`
	RetouchCover           any              `json:"retouch_cover"`
	Source                 string           `json:"source"`
	StaticCoverImagePath   string           `json:"static_cover_image_path"`
	Tracks                 []trackDoc       `json:"tracks"`
	UpdateTime             int64            `json:"update_time"`
	Version                int              `json:"version"`
}

type metaDoc struct {
	DraftCloudCapcutPurchaseInfo   string `json:"draft_cloud_capcut_purchase_info"`
	DraftCloudLastActionDownload   bool   `json:"draft_cloud_last_action_download"`
	DraftCloudMaterials            []any  `json:"draft_cloud_materials"`
	DraftCloudPurchaseInfo         string `json:"draft_cloud_purchase_info"`
	DraftCloudTemplateID           string `json:"draft_cloud_template_id"`
	DraftCloudTutorialInfo         string `json:"draft_cloud_tutorial_info"`
	DraftCloudVideocutPurchaseInfo string `json:"draft_cloud_videocut_purchase_info"`
	DraftCover                     string `json:"draft_cover"`
	DraftDeeplinkURL               string `json:"draft_deeplink_url"`
	DraftEnterpriseInfo            struct{} `json:"draft_enterprise_info"`
	DraftFoldPath                  string `json:"draft_fold_path"`
	DraftID                        string `json:"draft_id"`
	DraftIsAIShorts                bool   `json:"draft_is_ai_shorts"`
	DraftIsArticleVideoDraft       bool   `json:"draft_is_article_video_draft"`
	DraftIsFromDeeplink            string `json:"draft_is_from_deeplink"`
	DraftIsInvisible               bool   `json:"draft_is_invisible"`
	DraftMaterialsCopied           bool   `json:"draft_materials_copied"`
	DraftName                      string `json:"draft_name"`
	DraftNewVersion                string `json:"draft_new_version"`
	DraftRemovableStorageDevice    string `json:"draft_removable_storage_device"`
	DraftRootPath                  string `json:"draft_root_path"`
	DraftSegmentExtraInfo          string `json:"draft_segment_extra_info"`
	DraftTimelineMaterialsSize     int64  `json:"draft_timeline_materials_size_"`
	TmDraftCloudCompleted          int64  `json:"tm_draft_cloud_completed"`
	TmDraftCloudModified           int64  `json:"tm_draft_cloud_modified"`
	TmDraftCreate                  int64  `json:"tm_draft_create"`
	TmDraftModified                int64  `json:"tm_draft_modified"`
	TmDuration                     int64  `json:"tm_duration"`
}
