package run

// Environment is the hardware and player metadata recorded alongside a run.
// The pipeline does not interpret it; it is passed through to the aggregated result.
type Environment struct {
	PlayerSystemInfo PlayerSystemInfo `json:"playerSystemInfo"`
	EditorVersion    EditorVersion    `json:"editorVersion"`
	BuildSettings    BuildSettings    `json:"buildSettings"`
	ScreenSettings   ScreenSettings   `json:"screenSettings"`
	QualitySettings  QualitySettings  `json:"qualitySettings"`
	PlayerSettings   PlayerSettings   `json:"playerSettings"`
}

// PlayerSystemInfo describes the device the run executed on.
type PlayerSystemInfo struct {
	OperatingSystem    string `json:"operatingSystem,omitempty"`
	DeviceModel        string `json:"deviceModel,omitempty"`
	DeviceName         string `json:"deviceName,omitempty"`
	ProcessorType      string `json:"processorType,omitempty"`
	ProcessorCount     int    `json:"processorCount,omitempty"`
	GraphicsDeviceName string `json:"graphicsDeviceName,omitempty"`
	SystemMemorySizeMB int    `json:"systemMemorySizeMB,omitempty"`
	XrModel            string `json:"xrModel,omitempty"`
	XrDevice           string `json:"xrDevice,omitempty"`
}

// EditorVersion identifies the build of the tool that produced the run.
type EditorVersion struct {
	FullVersion   string `json:"fullVersion,omitempty"`
	DateSeconds   int    `json:"dateSeconds,omitempty"`
	Branch        string `json:"branch,omitempty"`
	RevisionValue int    `json:"revisionValue,omitempty"`
}

// BuildSettings are the build flags of the player under test.
type BuildSettings struct {
	Platform           string `json:"platform,omitempty"`
	BuildTarget        string `json:"buildTarget,omitempty"`
	DevelopmentPlayer  bool   `json:"developmentPlayer,omitempty"`
	AndroidBuildSystem string `json:"androidBuildSystem,omitempty"`
}

// ScreenSettings are the display settings of the player under test.
type ScreenSettings struct {
	ScreenWidth       int  `json:"screenWidth,omitempty"`
	ScreenHeight      int  `json:"screenHeight,omitempty"`
	ScreenRefreshRate int  `json:"screenRefreshRate,omitempty"`
	Fullscreen        bool `json:"fullscreen,omitempty"`
}

// QualitySettings are the rendering quality settings of the player under test.
type QualitySettings struct {
	Vsync                int    `json:"vsync,omitempty"`
	AntiAliasing         int    `json:"antiAliasing,omitempty"`
	ColorSpace           string `json:"colorSpace,omitempty"`
	AnisotropicFiltering string `json:"anisotropicFiltering,omitempty"`
	BlendWeights         string `json:"blendWeights,omitempty"`
}

// PlayerSettings are the free-form player settings recorded with the run.
type PlayerSettings struct {
	ScriptingBackend    string   `json:"scriptingBackend,omitempty"`
	GraphicsAPI         string   `json:"graphicsApi,omitempty"`
	RenderThreadingMode string   `json:"renderThreadingMode,omitempty"`
	StereoRenderingPath string   `json:"stereoRenderingPath,omitempty"`
	GpuSkinning         bool     `json:"gpuSkinning,omitempty"`
	GraphicsJobs        bool     `json:"graphicsJobs,omitempty"`
	MtRendering         bool     `json:"mtRendering,omitempty"`
	Batchmode           bool     `json:"batchmode,omitempty"`
	VrSupported         bool     `json:"vrSupported,omitempty"`
	EnabledXrTargets    []string `json:"enabledXrTargets,omitempty"`
}
