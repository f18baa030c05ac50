package mock_generator

type MockScene struct {
	ID           string `json:"id"`
	Narration    string `json:"narration"`
	VisualPrompt string `json:"visualPrompt"`
}

type MockScript struct {
	Title  string      `json:"title"`
	Scenes []MockScene `json:"scenes"`
}

type MockMedia struct {
	SceneIndex int    `json:"sceneIndex"`
	Data       string `json:"data"`
	Delay      int    `json:"delay"`
}
