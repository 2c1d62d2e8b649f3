package main

import (
	"fmt"

	"github.com/Desarso/insurebot"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/recommend"
	"github.com/spf13/cobra"
)

var recommendReq recommend.Request
var recommendLanguage string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate a policy recommendation and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupContext()

		advisor, err := insurebot.NewAdvisor(ctx, config)
		if err != nil {
			return err
		}
		defer advisor.Close()

		recommendReq.Language = i18n.ParseLanguage(recommendLanguage)
		fmt.Println(advisor.Recommend(ctx, recommendReq))
		return nil
	},
}

func init() {
	f := recommendCmd.Flags()
	f.StringVar(&recommendReq.InsuranceType, "type", "", "insurance type (Auto, Home, Life, Health, Travel)")
	f.StringVar(&recommendReq.Coverage, "coverage", "", "coverage amount")
	f.StringVar(&recommendReq.PolicyDetails, "details", "", "free form policy details")
	f.Float64Var(&recommendReq.Budget, "budget", 0, "premium budget")
	f.StringVar(&recommendReq.Currency, "currency", i18n.DefaultCurrency, "budget currency (USD, EUR, CAD)")
	f.StringVar(&recommendReq.PolicyTerm, "term", "", "policy term")
	f.IntVar(&recommendReq.NumPeople, "people", 1, "number of insured individuals")
	f.StringVar(&recommendLanguage, "language", "en", "response language (en, fr)")
	rootCmd.AddCommand(recommendCmd)
}
