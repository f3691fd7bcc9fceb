package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vivekpatel25/acac-war/internal/modelconfig"
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "배분 모델 설정",
	Long: `배분 모델 YAML을 조회하고 검증합니다.

Subcommands:
  show      - 적용될 설정 출력 (기본값 병합 후)
  hash      - 설정 해시 출력 (리더보드 재현성 확인용)
  validate  - 검증 및 경고

Example:
  go run ./cmd/netpts model show
  go run ./cmd/netpts model validate --model model.yaml`,
}

var (
	modelShowCmd = &cobra.Command{
		Use:   "show",
		Short: "적용될 설정 출력",
		RunE:  runModelShow,
	}

	modelHashCmd = &cobra.Command{
		Use:   "hash",
		Short: "설정 해시 출력",
		RunE:  runModelHash,
	}

	modelValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "설정 검증",
		RunE:  runModelValidate,
	}
)

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelShowCmd)
	modelCmd.AddCommand(modelHashCmd)
	modelCmd.AddCommand(modelValidateCmd)
}

// loadModel resolves --model, then MODEL_CONFIG, then the built-in default
func loadModel() (*modelconfig.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	model, _, err := modelconfig.LoadOrDefault(cfg.Pipeline.ModelConfig)
	if err != nil {
		return nil, err
	}
	return model, nil
}

func runModelShow(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("encode model config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runModelHash(cmd *cobra.Command, args []string) error {
	model, err := loadModel()
	if err != nil {
		return err
	}

	hash, err := modelconfig.Hash(model)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func runModelValidate(cmd *cobra.Command, args []string) error {
	// LoadOrDefault already rejects invalid files
	model, err := loadModel()
	if err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess(fmt.Sprintf("%s %s is valid", model.Meta.ModelID, model.Meta.Version))
	for _, w := range modelconfig.Warn(model) {
		PrintWarning(fmt.Sprintf("[%s] %s", w.Code, w.Message))
	}
	return nil
}
